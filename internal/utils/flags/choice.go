package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix       = "<"
	choicePlaceholderSuffix       = ">"
	choiceSeparatorLiteral        = "|"
	choiceUsageEmptyTemplate      = "`%s`"
	choiceUsageFullTemplate       = "`%s` %s"
	choiceTypeName                = "choice"
	choiceInvalidValueTemplate    = "invalid value %q, expected one of %s"
	choiceExpectedValuesSeparator = ", "
)

// ChoiceValue is a pflag.Value restricted to a fixed set of case-insensitive options.
type ChoiceValue struct {
	selected string
	choices  []string
}

var _ pflag.Value = (*ChoiceValue)(nil)

// NewChoiceValue creates a ChoiceValue holding defaultChoice. An empty default
// leaves the value unset so configuration can supply it.
func NewChoiceValue(defaultChoice string, choices []string) *ChoiceValue {
	return &ChoiceValue{
		selected: strings.ToLower(strings.TrimSpace(defaultChoice)),
		choices:  normalizeChoices(choices),
	}
}

// String returns the selected option.
func (value *ChoiceValue) String() string {
	if value == nil {
		return ""
	}
	return value.selected
}

// Set selects candidate when it matches one of the configured options.
func (value *ChoiceValue) Set(candidate string) error {
	normalizedCandidate := strings.ToLower(strings.TrimSpace(candidate))
	for _, choice := range value.choices {
		if choice == normalizedCandidate {
			value.selected = choice
			return nil
		}
	}
	return fmt.Errorf(choiceInvalidValueTemplate, candidate, strings.Join(value.choices, choiceExpectedValuesSeparator))
}

// Type reports the flag type shown in help output.
func (value *ChoiceValue) Type() string {
	return choiceTypeName
}

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := buildChoicePlaceholder(defaultChoice, choices)
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

func buildChoicePlaceholder(defaultChoice string, choices []string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := normalizeChoices(choices)
	for index, choice := range highlighted {
		if choice == normalizedDefault {
			highlighted[index] = strings.ToUpper(choice)
		}
	}
	return choicePlaceholderPrefix + strings.Join(highlighted, choiceSeparatorLiteral) + choicePlaceholderSuffix
}

func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		normalized = append(normalized, normalizedChoice)
	}
	return normalized
}

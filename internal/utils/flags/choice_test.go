package flags

import (
	"io"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "text",
			choices:        []string{"text", "yaml"},
			description:    "Report format.",
			expectedOutput: "`<TEXT|yaml>` Report format.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "Log format.",
			expectedOutput: "`<structured|CONSOLE>` Log format.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "text",
			choices:        []string{"text", "yaml"},
			expectedOutput: "`<TEXT|yaml>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "yaml",
			choices:        []string{"yaml", "YAML", "text"},
			description:    "Report format.",
			expectedOutput: "`<YAML|text>` Report format.",
		},
		{
			name:           "NoDefault",
			choices:        []string{" text ", " yaml "},
			description:    "Report format.",
			expectedOutput: "`<text|yaml>` Report format.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestChoiceValueSet(t *testing.T) {
	testCases := []struct {
		name          string
		candidate     string
		expectError   bool
		expectedValue string
	}{
		{name: "ExactMatch", candidate: "yaml", expectedValue: "yaml"},
		{name: "CaseInsensitive", candidate: " YAML ", expectedValue: "yaml"},
		{name: "UnknownChoice", candidate: "xml", expectError: true, expectedValue: "text"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			value := NewChoiceValue("text", []string{"text", "yaml"})
			setError := value.Set(testCase.candidate)
			if testCase.expectError {
				require.Error(t, setError)
				require.Contains(t, setError.Error(), "text, yaml")
			} else {
				require.NoError(t, setError)
			}
			require.Equal(t, testCase.expectedValue, value.String())
		})
	}
}

func TestChoiceValueParsesThroughFlagSet(t *testing.T) {
	flagSet := pflag.NewFlagSet("report", pflag.ContinueOnError)
	value := NewChoiceValue("", []string{"text", "yaml"})
	flagSet.Var(value, "format", FormatChoiceUsage("", []string{"text", "yaml"}, "Report format."))

	require.Empty(t, value.String())
	require.NoError(t, flagSet.Parse([]string{"--format", "Yaml"}))
	require.Equal(t, "yaml", value.String())
	require.True(t, flagSet.Changed("format"))

	rejectingFlagSet := pflag.NewFlagSet("report", pflag.ContinueOnError)
	rejectingFlagSet.SetOutput(io.Discard)
	rejectingFlagSet.Var(NewChoiceValue("", []string{"text", "yaml"}), "format", "")
	require.Error(t, rejectingFlagSet.Parse([]string{"--format", "xml"}))
}

package drift

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	moduleHeaderTemplateConstant  = "%-15s %s\n"
	overrideEntryTemplateConstant = "%s%s: %s parent: %s\n"
	overrideEntryIndentConstant   = "                          "
	skippedHeaderConstant         = "\nModules without parent version (not compared):\n"
	unusedHeaderConstant          = "Version properties not used in parent POM (making them mandatory in child POM's):\n"
	unusedEntryTemplateConstant   = "  %s.version\n"
	thirdPartyHeaderConstant      = "\nNo property for third party dependencies):\n"
	listEntryTemplateConstant     = "  %s\n"
	yamlIndentConstant            = 2
	renderErrorTemplateConstant   = "unable to render report: %w"
)

// Renderer writes a Report to an output stream.
type Renderer interface {
	Render(writer io.Writer, report Report) error
}

// TextRenderer produces the column-aligned plain text report.
type TextRenderer struct{}

// Render writes module tables, then skipped modules, unused properties and
// third-party literal versions. Empty sections are omitted entirely.
func (TextRenderer) Render(writer io.Writer, report Report) error {
	reportWriter := &errorTrackingWriter{writer: writer}

	for _, module := range report.Modules {
		reportWriter.printf(moduleHeaderTemplateConstant, module.ParentVersion, module.Path)
		for _, entry := range module.Entries {
			reportWriter.printf(overrideEntryTemplateConstant, overrideEntryIndentConstant, entry.Name, entry.Version, entry.Parent)
		}
	}

	if len(report.SkippedModules) > 0 {
		reportWriter.printf(skippedHeaderConstant)
		for _, skippedModule := range report.SkippedModules {
			reportWriter.printf(listEntryTemplateConstant, skippedModule)
		}
	}

	if len(report.UnusedProperties) > 0 {
		reportWriter.printf(unusedHeaderConstant)
		for _, propertyName := range report.UnusedProperties {
			reportWriter.printf(unusedEntryTemplateConstant, propertyName)
		}
	}

	if len(report.ThirdPartyLiterals) > 0 {
		reportWriter.printf(thirdPartyHeaderConstant)
		for _, coordinates := range report.ThirdPartyLiterals {
			reportWriter.printf(listEntryTemplateConstant, coordinates)
		}
	}

	if reportWriter.err != nil {
		return fmt.Errorf(renderErrorTemplateConstant, reportWriter.err)
	}
	return nil
}

// YAMLRenderer encodes the report as a YAML document.
type YAMLRenderer struct{}

// Render encodes report with two-space indentation.
func (YAMLRenderer) Render(writer io.Writer, report Report) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(report); encodeError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, closeError)
	}
	return nil
}

func resolveRenderer(options CommandOptions) (Renderer, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(string(options.OutputFormat)))) {
	case "", OutputFormatText:
		return TextRenderer{}, nil
	case OutputFormatYAML:
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf(unsupportedFormatTemplateConstant, options.OutputFormat)
	}
}

// errorTrackingWriter keeps the first write error so rendering code stays linear.
type errorTrackingWriter struct {
	writer io.Writer
	err    error
}

func (trackingWriter *errorTrackingWriter) printf(format string, arguments ...any) {
	if trackingWriter.err != nil {
		return
	}
	_, trackingWriter.err = fmt.Fprintf(trackingWriter.writer, format, arguments...)
}

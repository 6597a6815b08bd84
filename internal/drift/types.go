package drift

// OutputFormat selects how the report is rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"
)

// Markers printed in the parent column of an override entry.
const (
	ParentVersionUnavailable = "N/A"
	ParentVersionIdentical   = "idem"
)

// CommandOptions captures the resolved parameters of one drift run.
type CommandOptions struct {
	ParentPath    string
	ScanRoot      string
	RootMarker    string
	OutputFormat  OutputFormat
	ReportSkipped bool
}

// OverrideEntry compares one child component version with the parent baseline.
type OverrideEntry struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Parent  string `yaml:"parent"`
}

// ModuleReport lists the component versions of a child module declaring a parent version.
type ModuleReport struct {
	Path          string          `yaml:"path"`
	ParentVersion string          `yaml:"parent_version"`
	Entries       []OverrideEntry `yaml:"entries"`
}

// Report is the complete outcome of a drift run.
type Report struct {
	Modules            []ModuleReport `yaml:"modules"`
	SkippedModules     []string       `yaml:"skipped_modules,omitempty"`
	UnusedProperties   []string       `yaml:"unused_properties"`
	ThirdPartyLiterals []string       `yaml:"third_party_literals"`
}

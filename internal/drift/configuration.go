package drift

import (
	"strings"

	"github.com/temirov/pom-audit/internal/discovery"
	"github.com/temirov/pom-audit/internal/pom"
)

const (
	defaultParentPathConstant            = "pom.xml"
	defaultScanRootConstant              = ".."
	defaultRootMarkerConstant            = "modules/"
	configurationKeySeparatorConstant    = "."
	parentPathConfigurationKeyConstant   = "parent_pom"
	scanRootConfigurationKeyConstant     = "scan_root"
	fileNameConfigurationKeyConstant     = "configuration_file_name"
	excludedConfigurationKeyConstant     = "excluded_directories"
	namespaceConfigurationKeyConstant    = "namespace"
	rootMarkerConfigurationKeyConstant   = "root_marker"
	outputFormatConfigurationKeyConstant = "output_format"
	skippedConfigurationKeyConstant      = "report_skipped"
)

// CommandConfiguration captures persistent settings for the drift report.
type CommandConfiguration struct {
	ParentPath             string   `mapstructure:"parent_pom"`
	ScanRoot               string   `mapstructure:"scan_root"`
	ConfigurationFileName  string   `mapstructure:"configuration_file_name"`
	ExcludedDirectoryNames []string `mapstructure:"excluded_directories"`
	Namespace              string   `mapstructure:"namespace"`
	RootMarker             string   `mapstructure:"root_marker"`
	OutputFormat           string   `mapstructure:"output_format"`
	ReportSkipped          bool     `mapstructure:"report_skipped"`
}

// DefaultCommandConfiguration returns the settings that reproduce the classic
// run: parent pom.xml in the working directory, scan of the enclosing directory.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ParentPath:             defaultParentPathConstant,
		ScanRoot:               defaultScanRootConstant,
		ConfigurationFileName:  discovery.DefaultConfigurationFileName,
		ExcludedDirectoryNames: []string{discovery.DefaultExcludedDirectoryName},
		Namespace:              pom.DefaultNamespace,
		RootMarker:             defaultRootMarkerConstant,
		OutputFormat:           string(OutputFormatText),
		ReportSkipped:          false,
	}
}

// DefaultConfigurationValues flattens DefaultCommandConfiguration into Viper defaults under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	qualify := func(key string) string {
		if len(prefix) == 0 {
			return key
		}
		return prefix + configurationKeySeparatorConstant + key
	}

	return map[string]any{
		qualify(parentPathConfigurationKeyConstant):   defaults.ParentPath,
		qualify(scanRootConfigurationKeyConstant):     defaults.ScanRoot,
		qualify(fileNameConfigurationKeyConstant):     defaults.ConfigurationFileName,
		qualify(excludedConfigurationKeyConstant):     defaults.ExcludedDirectoryNames,
		qualify(namespaceConfigurationKeyConstant):    defaults.Namespace,
		qualify(rootMarkerConfigurationKeyConstant):   defaults.RootMarker,
		qualify(outputFormatConfigurationKeyConstant): defaults.OutputFormat,
		qualify(skippedConfigurationKeyConstant):      defaults.ReportSkipped,
	}
}

// sanitize trims whitespace and restores defaults for blank values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.ParentPath = valueOrDefault(configuration.ParentPath, defaults.ParentPath)
	sanitized.ScanRoot = valueOrDefault(configuration.ScanRoot, defaults.ScanRoot)
	sanitized.ConfigurationFileName = valueOrDefault(configuration.ConfigurationFileName, defaults.ConfigurationFileName)
	sanitized.Namespace = valueOrDefault(configuration.Namespace, defaults.Namespace)
	sanitized.RootMarker = strings.TrimSpace(configuration.RootMarker)
	sanitized.OutputFormat = strings.ToLower(valueOrDefault(configuration.OutputFormat, defaults.OutputFormat))
	sanitized.ExcludedDirectoryNames = sanitizeNames(configuration.ExcludedDirectoryNames)
	if len(sanitized.ExcludedDirectoryNames) == 0 {
		sanitized.ExcludedDirectoryNames = defaults.ExcludedDirectoryNames
	}

	return sanitized
}

func valueOrDefault(value string, defaultValue string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return defaultValue
	}
	return trimmed
}

func sanitizeNames(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

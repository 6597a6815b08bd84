package drift

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pom-audit/internal/discovery"
	"github.com/temirov/pom-audit/internal/pom"
	"github.com/temirov/pom-audit/internal/utils/flags"
	pathutils "github.com/temirov/pom-audit/internal/utils/path"
)

const (
	commandUseConstant                   = "report"
	commandShortDescriptionConstant      = "Report version drift between a parent POM and its modules"
	commandLongDescriptionConstant       = "report compares every module pom.xml below the scan root with the parent pom.xml, lists parent version properties no dependency uses, and lists third-party dependencies pinned to literal versions."
	unexpectedArgumentsMessageConstant   = "report does not accept positional arguments"
	flagParentNameConstant               = "parent"
	flagParentDescriptionConstant        = "Path to the parent pom.xml"
	flagRootNameConstant                 = "root"
	flagRootDescriptionConstant          = "Directory scanned recursively for module descriptors"
	flagMarkerNameConstant               = "marker"
	flagMarkerDescriptionConstant        = "Path segment after which module paths are displayed"
	flagFormatNameConstant               = "format"
	flagFormatDescriptionConstant        = "Report format"
	flagReportSkippedNameConstant        = "report-skipped"
	flagReportSkippedDescriptionConstant = "List modules without a parent version instead of silently skipping them"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current drift configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the report cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            ConfigurationDiscoverer
	Extractor             VersionExtractor
	PathExpander          PathExpander
}

// Build constructs the cobra command for the drift report.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.Run,
	}

	command.Flags().String(flagParentNameConstant, "", flagParentDescriptionConstant)
	command.Flags().String(flagRootNameConstant, "", flagRootDescriptionConstant)
	command.Flags().String(flagMarkerNameConstant, "", flagMarkerDescriptionConstant)
	outputFormats := []string{string(OutputFormatText), string(OutputFormatYAML)}
	command.Flags().Var(flags.NewChoiceValue("", outputFormats), flagFormatNameConstant, flags.FormatChoiceUsage(string(OutputFormatText), outputFormats, flagFormatDescriptionConstant))
	command.Flags().Bool(flagReportSkippedNameConstant, false, flagReportSkippedDescriptionConstant)

	return command, nil
}

// Run executes the drift report for command. Flags missing from command fall
// back to configuration, so the root command can delegate here directly.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := builder.resolveConfiguration()
	options := builder.parseOptions(command, configuration)
	pathExpander := builder.resolvePathExpander()
	options.ParentPath = pathExpander.Expand(options.ParentPath)
	options.ScanRoot = pathExpander.Expand(options.ScanRoot)

	service := NewService(
		builder.resolveDiscoverer(configuration),
		builder.resolveExtractor(configuration),
		builder.resolveLogger(),
		command.OutOrStdout(),
	)
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, configuration CommandConfiguration) CommandOptions {
	options := CommandOptions{
		ParentPath:    configuration.ParentPath,
		ScanRoot:      configuration.ScanRoot,
		RootMarker:    configuration.RootMarker,
		OutputFormat:  OutputFormat(configuration.OutputFormat),
		ReportSkipped: configuration.ReportSkipped,
	}

	if parentPath, changed := changedStringFlag(command, flagParentNameConstant); changed {
		options.ParentPath = parentPath
	}
	if scanRoot, changed := changedStringFlag(command, flagRootNameConstant); changed {
		options.ScanRoot = scanRoot
	}
	if rootMarker, changed := changedStringFlag(command, flagMarkerNameConstant); changed {
		options.RootMarker = rootMarker
	}
	if outputFormat, changed := changedStringFlag(command, flagFormatNameConstant); changed {
		options.OutputFormat = OutputFormat(outputFormat)
	}
	if command != nil {
		if reportSkippedFlag := command.Flags().Lookup(flagReportSkippedNameConstant); reportSkippedFlag != nil && reportSkippedFlag.Changed {
			reportSkipped, flagError := command.Flags().GetBool(flagReportSkippedNameConstant)
			if flagError == nil {
				options.ReportSkipped = reportSkipped
			}
		}
	}

	return options
}

func changedStringFlag(command *cobra.Command, flagName string) (string, bool) {
	if command == nil {
		return "", false
	}
	flag := command.Flags().Lookup(flagName)
	if flag == nil || !flag.Changed {
		return "", false
	}
	return flag.Value.String(), true
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveDiscoverer(configuration CommandConfiguration) ConfigurationDiscoverer {
	if builder.Discoverer != nil {
		return builder.Discoverer
	}
	return discovery.NewFilesystemConfigurationDiscoverer(configuration.ConfigurationFileName, configuration.ExcludedDirectoryNames)
}

func (builder *CommandBuilder) resolveExtractor(configuration CommandConfiguration) VersionExtractor {
	if builder.Extractor != nil {
		return builder.Extractor
	}
	return pom.NewExtractor(configuration.Namespace)
}

func (builder *CommandBuilder) resolvePathExpander() PathExpander {
	if builder.PathExpander != nil {
		return builder.PathExpander
	}
	return pathutils.NewHomeExpander()
}

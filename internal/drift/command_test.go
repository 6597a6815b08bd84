package drift_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/pom-audit/internal/drift"
)

const (
	reportParentFlagConstant          = "--parent"
	reportRootFlagConstant            = "--root"
	reportFormatFlagConstant          = "--format"
	reportSkippedFlagConstant         = "--report-skipped"
	reportUnexpectedArgumentsConstant = "report does not accept positional arguments"
)

func TestCommandBuilderRunsReport(testInstance *testing.T) {
	testCases := []struct {
		name             string
		configuration    func(fixture driftFixture) drift.CommandConfiguration
		arguments        func(fixture driftFixture) []string
		expectedFragment string
		absentFragment   string
	}{
		{
			name: "configuration_only",
			configuration: func(fixture driftFixture) drift.CommandConfiguration {
				configuration := drift.DefaultCommandConfiguration()
				configuration.ParentPath = fixture.parentPath
				configuration.ScanRoot = fixture.rootDirectory
				return configuration
			},
			arguments:        func(fixture driftFixture) []string { return []string{} },
			expectedFragment: "1.0-SNAPSHOT    a/pom.xml\n",
			absentFragment:   "Modules without parent version",
		},
		{
			name: "flags_override_configuration",
			configuration: func(fixture driftFixture) drift.CommandConfiguration {
				return drift.CommandConfiguration{ParentPath: "missing.xml", ScanRoot: "missing"}
			},
			arguments: func(fixture driftFixture) []string {
				return []string{
					reportParentFlagConstant, fixture.parentPath,
					reportRootFlagConstant, fixture.rootDirectory,
					reportFormatFlagConstant, string(drift.OutputFormatYAML),
				}
			},
			expectedFragment: "third_party_literals:",
		},
		{
			name: "report_skipped_flag",
			configuration: func(fixture driftFixture) drift.CommandConfiguration {
				configuration := drift.DefaultCommandConfiguration()
				configuration.ParentPath = fixture.parentPath
				configuration.ScanRoot = fixture.rootDirectory
				return configuration
			},
			arguments:        func(fixture driftFixture) []string { return []string{reportSkippedFlagConstant} },
			expectedFragment: "Modules without parent version (not compared):\n  b/pom.xml\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fixture := newDriftFixture(testInstance)

			builder := drift.CommandBuilder{
				LoggerProvider: func() *zap.Logger { return zap.NewNop() },
				ConfigurationProvider: func() drift.CommandConfiguration {
					return testCase.configuration(fixture)
				},
			}

			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			command.SetContext(context.Background())
			command.SetArgs(testCase.arguments(fixture))

			outputBuffer := &strings.Builder{}
			command.SetOut(outputBuffer)
			command.SetErr(outputBuffer)

			require.NoError(testInstance, command.Execute())
			require.Contains(testInstance, outputBuffer.String(), testCase.expectedFragment)
			if len(testCase.absentFragment) > 0 {
				require.NotContains(testInstance, outputBuffer.String(), testCase.absentFragment)
			}
		})
	}
}

func TestCommandBuilderRejectsPositionalArguments(testInstance *testing.T) {
	builder := drift.CommandBuilder{}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetContext(context.Background())
	command.SetArgs([]string{"unexpected"})
	command.SetOut(&strings.Builder{})
	command.SetErr(&strings.Builder{})

	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.Equal(testInstance, reportUnexpectedArgumentsConstant, executionError.Error())
}

func TestDefaultConfigurationValuesArePrefixed(testInstance *testing.T) {
	values := drift.DefaultConfigurationValues("audit")

	require.Equal(testInstance, "pom.xml", values["audit.parent_pom"])
	require.Equal(testInstance, "..", values["audit.scan_root"])
	require.Equal(testInstance, []string{"target"}, values["audit.excluded_directories"])
	require.Equal(testInstance, "modules/", values["audit.root_marker"])
	require.Equal(testInstance, "text", values["audit.output_format"])
	require.Equal(testInstance, false, values["audit.report_skipped"])
}

type prefixPathExpander struct {
	shortcut    string
	replacement string
}

func (expander prefixPathExpander) Expand(candidatePath string) string {
	if strings.HasPrefix(candidatePath, expander.shortcut) {
		return expander.replacement + strings.TrimPrefix(candidatePath, expander.shortcut)
	}
	return candidatePath
}

func TestCommandBuilderExpandsConfiguredPaths(testInstance *testing.T) {
	fixture := newDriftFixture(testInstance)

	builder := drift.CommandBuilder{
		ConfigurationProvider: func() drift.CommandConfiguration {
			configuration := drift.DefaultCommandConfiguration()
			configuration.ParentPath = "~/parent/pom.xml"
			configuration.ScanRoot = "~"
			return configuration
		},
		PathExpander: prefixPathExpander{shortcut: "~", replacement: fixture.rootDirectory},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &strings.Builder{}
	command.SetContext(context.Background())
	command.SetArgs([]string{})
	command.SetOut(outputBuffer)
	command.SetErr(&strings.Builder{})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, outputBuffer.String(), "1.0-SNAPSHOT    a/pom.xml\n")
}

package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pom-audit/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTPOMAUDIT"
	testLogLevelKeyConstant                        = "common.log_level"
	testExcludedDirectoriesKeyConstant             = "audit.excluded_directories"
	testLogLevelEnvironmentNameConstant            = "TESTPOMAUDIT_COMMON_LOG_LEVEL"
	testExcludedDirectoriesEnvironmentNameConstant = "TESTPOMAUDIT_AUDIT_EXCLUDED_DIRECTORIES"
	testDefaultLogLevelConstant                    = "info"
	testOverriddenLogLevelConstant                 = "error"
	testFileLogLevelConstant                       = "warn"
	testEmbeddedLogLevelConstant                   = "debug"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigContentTemplateConstant              = "common:\n  log_level: %s\n"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	testCaseEmbeddedMessageConstant                = "embedded configuration merges"
	testCaseDefaultsMessageConstant                = "defaults are applied"
	testCaseFileMessageConstant                    = "config file overrides embedded"
	testCaseEnvironmentMessageConstant             = "environment overrides file"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
	testDefaultExcludedDirectoryConstant           = "target"
)

type configurationFixture struct {
	Common configurationCommonFixture `mapstructure:"common"`
	Audit  configurationAuditFixture  `mapstructure:"audit"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

type configurationAuditFixture struct {
	ExcludedDirectories []string `mapstructure:"excluded_directories"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                string
		embeddedLogLevel    string
		fileLogLevel        string
		environmentLogLevel string
		expectedLogLevel    string
	}{
		{
			name:             testCaseEmbeddedMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			expectedLogLevel: testEmbeddedLogLevelConstant,
		},
		{
			name:             testCaseDefaultsMessageConstant,
			expectedLogLevel: testDefaultLogLevelConstant,
		},
		{
			name:             testCaseFileMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			fileLogLevel:     testFileLogLevelConstant,
			expectedLogLevel: testFileLogLevelConstant,
		},
		{
			name:                testCaseEnvironmentMessageConstant,
			embeddedLogLevel:    testDefaultLogLevelConstant,
			fileLogLevel:        testFileLogLevelConstant,
			environmentLogLevel: testOverriddenLogLevelConstant,
			expectedLogLevel:    testOverriddenLogLevelConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileLogLevel)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentLogLevel) > 0 {
				testInstance.Setenv(testLogLevelEnvironmentNameConstant, testCase.environmentLogLevel)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})
			if len(testCase.embeddedLogLevel) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedLogLevel)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{
				testLogLevelKeyConstant: testDefaultLogLevelConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedConfiguration.Common.LogLevel)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderSplitsEnvironmentLists(testInstance *testing.T) {
	testInstance.Setenv(testExcludedDirectoriesEnvironmentNameConstant, "target,build,out")

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})
	defaultValues := map[string]any{
		testExcludedDirectoriesKeyConstant: []string{testDefaultExcludedDirectoryConstant},
	}

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", defaultValues, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"target", "build", "out"}, loadedConfiguration.Audit.ExcludedDirectories)
}

func TestConfigurationLoaderRejectsUnreadableFile(testInstance *testing.T) {
	configurationFilePath := filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("common: [unterminated"), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(configurationFilePath, nil, &loadedConfiguration)
	require.Error(testInstance, loadError)
}

package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweeptools/sweep/internal/utils"
)

const (
	testConfigurationNameConstant   = "config"
	testConfigurationTypeConstant   = "yaml"
	testEnvironmentPrefixConstant   = "SWEEPTEST"
	testConfigurationFileConstant   = "config.yaml"
	testRemoteEnvironmentConstant   = "SWEEPTEST_TOOLS_SWEEP_REMOTE"
	testConfigurationYAMLConstant   = "common:\n  log_level: debug\ntools:\n  sweep:\n    remote: upstream\n    protected:\n      - trunk\n      - release\n"
	testMalformedYAMLConstant       = "common: [unclosed\n"
	testProtectedEnvironmentListing = "trunk,release"
)

type testConfigurationSchema struct {
	Common struct {
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"common"`
	Tools struct {
		Sweep struct {
			RemoteName        string   `mapstructure:"remote"`
			ProtectedBranches []string `mapstructure:"protected"`
		} `mapstructure:"sweep"`
	} `mapstructure:"tools"`
}

func writeTestConfigurationFile(testInstance *testing.T, contents string) string {
	temporaryDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, testConfigurationFileConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(contents), 0o644))
	return configurationPath
}

func TestConfigurationLoaderBehavior(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		configurationContents string
		useConfigurationFile  bool
		defaultValues         map[string]any
		environmentVariables  map[string]string
		expectedLogLevel      string
		expectedRemoteName    string
		expectedProtected     []string
		expectError           bool
	}{
		{
			name:                 "defaults_apply_without_configuration_file",
			useConfigurationFile: false,
			defaultValues: map[string]any{
				"common.log_level":   "info",
				"tools.sweep.remote": "origin",
			},
			expectedLogLevel:   "info",
			expectedRemoteName: "origin",
		},
		{
			name:                  "configuration_file_overrides_defaults",
			configurationContents: testConfigurationYAMLConstant,
			useConfigurationFile:  true,
			defaultValues: map[string]any{
				"common.log_level":   "info",
				"tools.sweep.remote": "origin",
			},
			expectedLogLevel:   "debug",
			expectedRemoteName: "upstream",
			expectedProtected:  []string{"trunk", "release"},
		},
		{
			name:                 "environment_variables_override_defaults",
			useConfigurationFile: false,
			defaultValues: map[string]any{
				"tools.sweep.remote": "origin",
			},
			environmentVariables: map[string]string{
				testRemoteEnvironmentConstant: "fork",
			},
			expectedRemoteName: "fork",
		},
		{
			name:                  "malformed_configuration_file_fails",
			configurationContents: testMalformedYAMLConstant,
			useConfigurationFile:  true,
			expectError:           true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			for environmentName, environmentValue := range testCase.environmentVariables {
				testInstance.Setenv(environmentName, environmentValue)
			}

			configurationFilePath := ""
			if testCase.useConfigurationFile {
				configurationFilePath = writeTestConfigurationFile(testInstance, testCase.configurationContents)
			}

			loader := utils.NewConfigurationLoader(
				testConfigurationNameConstant,
				testConfigurationTypeConstant,
				testEnvironmentPrefixConstant,
				[]string{testInstance.TempDir()},
			)

			var loadedSchema testConfigurationSchema
			loadedMetadata, loadError := loader.LoadConfiguration(configurationFilePath, testCase.defaultValues, &loadedSchema)
			if testCase.expectError {
				require.Error(testInstance, loadError)
				return
			}

			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedSchema.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedRemoteName, loadedSchema.Tools.Sweep.RemoteName)
			require.Equal(testInstance, testCase.expectedProtected, loadedSchema.Tools.Sweep.ProtectedBranches)
			if testCase.useConfigurationFile {
				require.Equal(testInstance, configurationFilePath, loadedMetadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderSplitsEnvironmentLists(testInstance *testing.T) {
	testInstance.Setenv("SWEEPTEST_TOOLS_SWEEP_PROTECTED", testProtectedEnvironmentListing)

	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{testInstance.TempDir()},
	)

	var loadedSchema testConfigurationSchema
	_, loadError := loader.LoadConfiguration("", map[string]any{"tools.sweep.protected": []string{}}, &loadedSchema)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"trunk", "release"}, loadedSchema.Tools.Sweep.ProtectedBranches)
}

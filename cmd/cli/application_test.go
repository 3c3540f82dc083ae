package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewApplicationRegistersPersistentFlags(testInstance *testing.T) {
	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)

	persistentFlags := application.rootCommand.PersistentFlags()
	require.NotNil(testInstance, persistentFlags.Lookup(configFileFlagNameConstant))
	require.NotNil(testInstance, persistentFlags.Lookup(logLevelFlagNameConstant))
	require.NotNil(testInstance, persistentFlags.Lookup(logFormatFlagNameConstant))
}

func TestInitializeConfigurationAppliesFlagOverrides(testInstance *testing.T) {
	testInstance.Chdir(testInstance.TempDir())

	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "debug"))
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "structured"))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))
	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.NotNil(testInstance, application.logger)
	require.False(testInstance, application.humanReadableLoggingEnabled())
}

func TestInitializeConfigurationDefaultsToConsoleLogging(testInstance *testing.T) {
	testInstance.Chdir(testInstance.TempDir())

	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))
	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.True(testInstance, application.humanReadableLoggingEnabled())
	require.Equal(testInstance, "origin", application.configuration.Tools.Sweep.RemoteName)
}

func TestInitializeConfigurationReadsEnvironmentOverrides(testInstance *testing.T) {
	testInstance.Chdir(testInstance.TempDir())
	testInstance.Setenv("SWEEP_TOOLS_SWEEP_REMOTE", "upstream")
	testInstance.Setenv("SWEEP_TOOLS_SWEEP_PROTECTED", "trunk,release")

	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))
	require.Equal(testInstance, "upstream", application.configuration.Tools.Sweep.RemoteName)
	require.Equal(testInstance, []string{"trunk", "release"}, application.configuration.Tools.Sweep.ProtectedBranches)
}

func TestInitializeConfigurationRejectsUnknownLogLevel(testInstance *testing.T) {
	testInstance.Chdir(testInstance.TempDir())

	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "verbose"))
	require.Error(testInstance, application.initializeConfiguration(application.rootCommand))
}

func TestFlushLoggerToleratesNopLogger(testInstance *testing.T) {
	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)
	require.NoError(testInstance, application.flushLogger())
}

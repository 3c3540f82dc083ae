package sweep_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweeptools/sweep/internal/sweep"
)

const testConfigurationKeyPrefixConstant = "tools.sweep"

func TestDefaultConfigurationValuesRegistersEveryKey(testInstance *testing.T) {
	defaultValues := sweep.DefaultConfigurationValues(testConfigurationKeyPrefixConstant)

	require.Equal(testInstance, "origin", defaultValues["tools.sweep.remote"])
	require.Equal(testInstance, false, defaultValues["tools.sweep.dry_run"])
	require.Equal(testInstance, false, defaultValues["tools.sweep.assume_yes"])
	require.Equal(testInstance, []string{}, defaultValues["tools.sweep.protected"])
}

func TestDefaultCommandConfiguration(testInstance *testing.T) {
	configuration := sweep.DefaultCommandConfiguration()

	require.Equal(testInstance, "origin", configuration.RemoteName)
	require.False(testInstance, configuration.DryRun)
	require.False(testInstance, configuration.AssumeYes)
	require.Nil(testInstance, configuration.ProtectedBranches)
}

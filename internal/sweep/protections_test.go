package sweep_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sweeptools/sweep/internal/sweep"
)

func TestResolveProtectedBranchSet(testInstance *testing.T) {
	testCases := []struct {
		name          string
		fileContents  string
		filePresent   bool
		overrideNames []string
		expectedNames []string
		expectError   bool
	}{
		{
			name:          "missing_file_uses_defaults",
			filePresent:   false,
			expectedNames: sweep.DefaultProtectedBranchNames(),
		},
		{
			name:          "valid_file_contents_win",
			fileContents:  `{"protected": ["trunk", "release"]}`,
			filePresent:   true,
			expectedNames: []string{"trunk", "release"},
		},
		{
			name:          "jsonc_comments_and_trailing_commas_tolerated",
			fileContents:  "{\n  // branches that must survive\n  \"protected\": [\"trunk\",],\n}",
			filePresent:   true,
			expectedNames: []string{"trunk"},
		},
		{
			name:          "empty_array_disables_protection",
			fileContents:  `{"protected": []}`,
			filePresent:   true,
			expectedNames: []string{},
		},
		{
			name:          "malformed_json_falls_back_to_defaults",
			fileContents:  `{"protected": [`,
			filePresent:   true,
			expectedNames: sweep.DefaultProtectedBranchNames(),
			expectError:   true,
		},
		{
			name:          "missing_field_falls_back_to_defaults",
			fileContents:  `{"branches": ["trunk"]}`,
			filePresent:   true,
			expectedNames: sweep.DefaultProtectedBranchNames(),
			expectError:   true,
		},
		{
			name:          "overrides_win_over_file",
			fileContents:  `{"protected": ["trunk"]}`,
			filePresent:   true,
			overrideNames: []string{"main", "staging"},
			expectedNames: []string{"main", "staging"},
		},
		{
			name:          "duplicate_and_blank_names_normalized",
			fileContents:  `{"protected": ["trunk", " trunk ", "", "release"]}`,
			filePresent:   true,
			expectedNames: []string{"trunk", "release"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedSet, resolveError := sweep.ResolveProtectedBranchSet([]byte(testCase.fileContents), testCase.filePresent, testCase.overrideNames)
			if testCase.expectError {
				require.Error(testInstance, resolveError)
			} else {
				require.NoError(testInstance, resolveError)
			}
			require.Equal(testInstance, testCase.expectedNames, resolvedSet.Names())
		})
	}
}

func TestProtectedBranchSetMembership(testInstance *testing.T) {
	protectedSet := sweep.NewProtectedBranchSet([]string{"main", "develop"})
	require.True(testInstance, protectedSet.Contains("main"))
	require.True(testInstance, protectedSet.Contains("develop"))
	require.False(testInstance, protectedSet.Contains("feature-x"))
}

func TestLoadProtectedBranchSetReadsWorkingDirectoryFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	protectionsPath := filepath.Join(temporaryDirectory, sweep.ProtectionsFileNameConstant)
	require.NoError(testInstance, os.WriteFile(protectionsPath, []byte(`{"protected": ["trunk"]}`), 0o644))

	loadedSet := sweep.LoadProtectedBranchSet(temporaryDirectory, nil, zap.NewNop())
	require.Equal(testInstance, []string{"trunk"}, loadedSet.Names())
}

func TestLoadProtectedBranchSetWarnsOnInvalidFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	protectionsPath := filepath.Join(temporaryDirectory, sweep.ProtectionsFileNameConstant)
	require.NoError(testInstance, os.WriteFile(protectionsPath, []byte("not json"), 0o644))

	observerCore, observedLogs := observer.New(zap.WarnLevel)
	loadedSet := sweep.LoadProtectedBranchSet(temporaryDirectory, nil, zap.New(observerCore))

	require.Equal(testInstance, sweep.DefaultProtectedBranchNames(), loadedSet.Names())
	require.Equal(testInstance, 1, observedLogs.Len())
}

func TestLoadProtectedBranchSetMissingFileIsSilent(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zap.WarnLevel)
	loadedSet := sweep.LoadProtectedBranchSet(testInstance.TempDir(), nil, zap.New(observerCore))

	require.Equal(testInstance, sweep.DefaultProtectedBranchNames(), loadedSet.Names())
	require.Zero(testInstance, observedLogs.Len())
}

package sweep_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweeptools/sweep/internal/sweep"
)

func TestClassifyGoneBranches(testInstance *testing.T) {
	testCases := []struct {
		name               string
		statusLines        []string
		protectedNames     []string
		expectedCandidates []string
	}{
		{
			name: "single_gone_branch_with_protected_main",
			statusLines: []string{
				"  feature-x  abc123 [origin/feature-x: gone] msg",
			},
			protectedNames:     []string{"main"},
			expectedCandidates: []string{"feature-x"},
		},
		{
			name: "protected_branch_excluded_even_when_gone",
			statusLines: []string{
				"  main  abc123 [origin/main: gone] msg",
			},
			protectedNames:     nil,
			expectedCandidates: []string{},
		},
		{
			name: "tracked_and_untracked_branches_ignored",
			statusLines: []string{
				"* main        abc1234 [origin/main] latest release",
				"  feature-a   def5678 [origin/feature-a: ahead 2] in review",
				"  feature-b   0123abc [origin/feature-b: gone] abandoned",
				"  local-only  456def0 no upstream here",
			},
			protectedNames:     nil,
			expectedCandidates: []string{"feature-b"},
		},
		{
			name: "current_branch_marker_stripped",
			statusLines: []string{
				"* feature-gone  abc1234 [origin/feature-gone: gone] wip",
				"+ worktree-gone def5678 [origin/worktree-gone: gone] wip",
			},
			protectedNames:     nil,
			expectedCandidates: []string{"feature-gone", "worktree-gone"},
		},
		{
			name: "listing_order_preserved",
			statusLines: []string{
				"  zebra  abc1234 [origin/zebra: gone] z",
				"  apple  def5678 [origin/apple: gone] a",
				"  mango  0123abc [origin/mango: gone] m",
			},
			protectedNames:     nil,
			expectedCandidates: []string{"zebra", "apple", "mango"},
		},
		{
			name:               "empty_listing_yields_no_candidates",
			statusLines:        nil,
			protectedNames:     nil,
			expectedCandidates: []string{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			protectedSet := sweep.NewProtectedBranchSet(append(testCase.protectedNames, sweep.DefaultProtectedBranchNames()...))
			candidates := sweep.ClassifyGoneBranches(testCase.statusLines, protectedSet)
			require.Equal(testInstance, testCase.expectedCandidates, candidates)
		})
	}
}

func TestClassifyGoneBranchesWithEmptyProtectionSet(testInstance *testing.T) {
	statusLines := []string{"  main  abc123 [origin/main: gone] msg"}
	candidates := sweep.ClassifyGoneBranches(statusLines, sweep.NewProtectedBranchSet(nil))
	require.Equal(testInstance, []string{"main"}, candidates)
}

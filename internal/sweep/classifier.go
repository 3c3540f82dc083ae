package sweep

import "strings"

const (
	goneUpstreamMarkerConstant     = ": gone]"
	currentBranchMarkerConstant    = "*"
	worktreeCheckoutMarkerConstant = "+"
)

// ClassifyGoneBranches extracts the names of branches whose upstream tracking
// branch is gone, preserving listing order and excluding protected names.
func ClassifyGoneBranches(statusLines []string, protectedBranches ProtectedBranchSet) []string {
	candidateBranches := make([]string, 0, len(statusLines))
	for _, statusLine := range statusLines {
		if !strings.Contains(statusLine, goneUpstreamMarkerConstant) {
			continue
		}

		branchName := extractBranchName(statusLine)
		if len(branchName) == 0 {
			continue
		}
		if protectedBranches.Contains(branchName) {
			continue
		}

		candidateBranches = append(candidateBranches, branchName)
	}
	return candidateBranches
}

// extractBranchName returns the first token of a verbose branch listing line,
// skipping the marker git prefixes to the current or worktree-checked-out branch.
func extractBranchName(statusLine string) string {
	lineFields := strings.Fields(statusLine)
	if len(lineFields) == 0 {
		return ""
	}

	firstField := lineFields[0]
	if firstField == currentBranchMarkerConstant || firstField == worktreeCheckoutMarkerConstant {
		if len(lineFields) < 2 {
			return ""
		}
		return lineFields[1]
	}
	return firstField
}

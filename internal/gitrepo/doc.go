// Package gitrepo exposes repository-level git operations used by the sweep
// workflow: working-tree validation, fetch with prune, verbose branch listing,
// and local branch deletion. All operations run through execshell so the git
// CLI is never invoked through a shell.
package gitrepo

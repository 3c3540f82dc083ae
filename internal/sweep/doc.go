// Package sweep implements gone-branch pruning: classifying local branches
// whose upstream tracking branch was deleted on the remote, collecting an
// interactive selection, and deleting the chosen branches with a force-delete
// confirmation flow for unmerged work.
//
// It offers CommandBuilder for the Cobra command, Service for orchestrating
// the workflow through git, and supporting options and interfaces to enable
// testing and reuse.
package sweep

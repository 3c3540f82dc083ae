// Package execshell provides structured helpers for invoking the git CLI.
//
// It wraps os/exec behind the CommandRunner interface, exposes OSCommandRunner
// for default process execution, and offers ShellExecutor to run git with
// logging, lifecycle observers, and typed failures so callers never parse raw
// exec errors.
package execshell

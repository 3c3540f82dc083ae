package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/sweeptools/sweep/internal/execshell"
)

const (
	executorMissingMessageConstant              = "git executor not configured"
	gitRevParseSubcommandConstant               = "rev-parse"
	gitWorkTreeFlagConstant                     = "--is-inside-work-tree"
	gitFetchSubcommandConstant                  = "fetch"
	gitFetchPruneFlagConstant                   = "--prune"
	gitBranchSubcommandConstant                 = "branch"
	gitBranchListFlagConstant                   = "--list"
	gitBranchVerboseFlagConstant                = "--verbose"
	gitBranchDeleteFlagConstant                 = "--delete"
	gitBranchForceFlagConstant                  = "--force"
	gitWorkTreeAffirmativeOutputConstant        = "true"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrExecutorNotConfigured indicates the repository manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager coordinates git invocations against a single working tree.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckIsWorkingTree reports whether the supplied path is inside a git working tree.
func (manager *RepositoryManager) CheckIsWorkingTree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitWorkTreeFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput) == gitWorkTreeAffirmativeOutputConstant, nil
}

// FetchWithPrune updates remote-tracking references for the named remote,
// mirroring git output to the terminal for transparency.
func (manager *RepositoryManager) FetchWithPrune(executionContext context.Context, repositoryPath string, remoteName string) error {
	arguments := []string{gitFetchSubcommandConstant, gitFetchPruneFlagConstant}
	trimmedRemoteName := strings.TrimSpace(remoteName)
	if len(trimmedRemoteName) > 0 {
		arguments = append(arguments, trimmedRemoteName)
	}

	_, executionError := manager.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
		StreamOutput:     true,
	})
	return executionError
}

// ListBranchStatusLines returns the verbose branch listing, one line per local branch.
func (manager *RepositoryManager) ListBranchStatusLines(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant, gitBranchListFlagConstant, gitBranchVerboseFlagConstant, gitBranchVerboseFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	rawLines := strings.Split(executionResult.StandardOutput, "\n")
	statusLines := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		if len(strings.TrimSpace(rawLine)) == 0 {
			continue
		}
		statusLines = append(statusLines, rawLine)
	}
	return statusLines, nil
}

// DeleteBranch removes a local branch, optionally bypassing the unmerged-commit safety check.
func (manager *RepositoryManager) DeleteBranch(executionContext context.Context, repositoryPath string, branchName string, force bool) error {
	arguments := []string{gitBranchSubcommandConstant, gitBranchDeleteFlagConstant}
	if force {
		arguments = append(arguments, gitBranchForceFlagConstant)
	}
	arguments = append(arguments, branchName)

	_, executionError := manager.executeGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

func (manager *RepositoryManager) executeGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	if details.EnvironmentVariables == nil {
		details.EnvironmentVariables = map[string]string{}
	}
	details.EnvironmentVariables[gitTerminalPromptEnvironmentNameConstant] = gitTerminalPromptEnvironmentDisableConstant
	return manager.executor.ExecuteGit(executionContext, details)
}

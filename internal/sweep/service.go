package sweep

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sweeptools/sweep/internal/execshell"
)

const (
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	selectorMissingMessageConstant          = "branch selector not configured"
	prompterMissingMessageConstant          = "confirmation prompter not configured"
	notARepositoryMessageConstant           = "current directory is not inside a git working tree"
	worktreeVerificationErrorTemplate       = "failed to verify git working tree: %w"
	fetchFailureTemplateConstant            = "failed to fetch from remote: %w"
	branchListingFailureTemplateConstant    = "failed to list local branches: %w"
	selectionFailureTemplateConstant        = "failed to collect branch selection: %w"
	forceDeletePromptTemplateConstant       = "Branch %q is not fully merged. Force delete? [y/N]: "
	unmergedErrorFragmentConstant           = "not fully merged"

	noCandidatesMessageConstant         = "no gone branches to prune"
	candidatesClassifiedMessageConstant = "classified gone branches"
	selectionEmptyMessageConstant       = "no branches selected, nothing to do"
	dryRunDeleteMessageConstant         = "dry run: would delete branch"
	branchDeletedMessageConstant        = "deleted branch"
	branchForceDeletedMessageConstant   = "force deleted branch"
	branchUnmergedWarningConstant       = "branch is not fully merged"
	branchSkippedMessageConstant        = "skipped branch"
	branchDeleteFailedMessageConstant   = "failed to delete branch"
	forceDeleteFailedMessageConstant    = "failed to force delete branch"
	confirmationFailedMessageConstant   = "failed to read force-delete confirmation"
	logFieldBranchNameConstant          = "branch"
	logFieldCandidateCountConstant      = "candidate_count"
	logFieldProtectedBranchesConstant   = "protected_branches"
)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrSelectorNotConfigured indicates the branch selector dependency was missing.
var ErrSelectorNotConfigured = errors.New(selectorMissingMessageConstant)

// ErrPrompterNotConfigured indicates the confirmation prompter dependency was missing.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// ErrNotAGitRepository indicates the working directory is not inside a git working tree.
var ErrNotAGitRepository = errors.New(notARepositoryMessageConstant)

// RepositoryManager exposes the git operations required by the sweep workflow.
type RepositoryManager interface {
	CheckIsWorkingTree(executionContext context.Context, repositoryPath string) (bool, error)
	FetchWithPrune(executionContext context.Context, repositoryPath string, remoteName string) error
	ListBranchStatusLines(executionContext context.Context, repositoryPath string) ([]string, error)
	DeleteBranch(executionContext context.Context, repositoryPath string, branchName string, force bool) error
}

// BranchSelector collects the subset of candidate branches chosen for deletion.
type BranchSelector interface {
	SelectBranches(executionContext context.Context, candidateBranches []string) ([]string, error)
}

// Dependencies enumerates external collaborators required by the sweep service.
type Dependencies struct {
	Logger            *zap.Logger
	RepositoryManager RepositoryManager
	Selector          BranchSelector
	Prompter          ConfirmationPrompter
}

// Options configures a single sweep run.
type Options struct {
	WorkingDirectory  string
	RemoteName        string
	DryRun            bool
	AssumeYes         bool
	ProtectedBranches ProtectedBranchSet
}

// Result captures the observable outcomes of a sweep run.
type Result struct {
	CandidateBranches []string
	SelectedBranches  []string
	DeletedBranches   []string
	SimulatedBranches []string
	SkippedBranches   []string
	FailedBranches    []string
}

// Service coordinates the gone-branch pruning workflow through git.
type Service struct {
	logger            *zap.Logger
	repositoryManager RepositoryManager
	selector          BranchSelector
	prompter          ConfirmationPrompter
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.Selector == nil {
		return nil, ErrSelectorNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:            logger,
		repositoryManager: dependencies.RepositoryManager,
		selector:          dependencies.Selector,
		prompter:          dependencies.Prompter,
	}, nil
}

// Sweep runs the full workflow: guard, fetch, classify, select, delete.
// Deletion failures are isolated per branch and never abort the batch.
func (service *Service) Sweep(executionContext context.Context, options Options) (Result, error) {
	result := Result{}

	insideWorkTree, verificationError := service.repositoryManager.CheckIsWorkingTree(executionContext, options.WorkingDirectory)
	if verificationError != nil {
		return result, fmt.Errorf(worktreeVerificationErrorTemplate, verificationError)
	}
	if !insideWorkTree {
		return result, ErrNotAGitRepository
	}

	if fetchError := service.repositoryManager.FetchWithPrune(executionContext, options.WorkingDirectory, options.RemoteName); fetchError != nil {
		return result, fmt.Errorf(fetchFailureTemplateConstant, fetchError)
	}

	statusLines, listingError := service.repositoryManager.ListBranchStatusLines(executionContext, options.WorkingDirectory)
	if listingError != nil {
		return result, fmt.Errorf(branchListingFailureTemplateConstant, listingError)
	}

	result.CandidateBranches = ClassifyGoneBranches(statusLines, options.ProtectedBranches)
	if len(result.CandidateBranches) == 0 {
		service.logger.Info(
			noCandidatesMessageConstant,
			zap.Strings(logFieldProtectedBranchesConstant, options.ProtectedBranches.Names()),
		)
		return result, nil
	}

	service.logger.Debug(
		candidatesClassifiedMessageConstant,
		zap.Int(logFieldCandidateCountConstant, len(result.CandidateBranches)),
	)

	selectedBranches, selectionError := service.collectSelection(executionContext, result.CandidateBranches, options)
	if selectionError != nil {
		return result, fmt.Errorf(selectionFailureTemplateConstant, selectionError)
	}
	result.SelectedBranches = selectedBranches
	if len(selectedBranches) == 0 {
		service.logger.Info(selectionEmptyMessageConstant)
		return result, nil
	}

	for _, branchName := range selectedBranches {
		service.deleteBranch(executionContext, branchName, options, &result)
	}

	return result, nil
}

func (service *Service) collectSelection(executionContext context.Context, candidateBranches []string, options Options) ([]string, error) {
	if options.AssumeYes {
		return append([]string{}, candidateBranches...), nil
	}
	return service.selector.SelectBranches(executionContext, candidateBranches)
}

func (service *Service) deleteBranch(executionContext context.Context, branchName string, options Options, result *Result) {
	branchField := zap.String(logFieldBranchNameConstant, branchName)

	if options.DryRun {
		service.logger.Info(dryRunDeleteMessageConstant, branchField)
		result.SimulatedBranches = append(result.SimulatedBranches, branchName)
		return
	}

	deletionError := service.repositoryManager.DeleteBranch(executionContext, options.WorkingDirectory, branchName, false)
	if deletionError == nil {
		service.logger.Info(branchDeletedMessageConstant, branchField)
		result.DeletedBranches = append(result.DeletedBranches, branchName)
		return
	}

	if !IsUnmergedDeletionError(deletionError) {
		service.logger.Error(branchDeleteFailedMessageConstant, branchField, zap.Error(deletionError))
		result.FailedBranches = append(result.FailedBranches, branchName)
		return
	}

	service.logger.Warn(branchUnmergedWarningConstant, branchField)

	confirmed := options.AssumeYes
	if !confirmed {
		promptConfirmed, promptError := service.prompter.Confirm(fmt.Sprintf(forceDeletePromptTemplateConstant, branchName))
		if promptError != nil {
			service.logger.Error(confirmationFailedMessageConstant, branchField, zap.Error(promptError))
			result.FailedBranches = append(result.FailedBranches, branchName)
			return
		}
		confirmed = promptConfirmed
	}

	if !confirmed {
		service.logger.Info(branchSkippedMessageConstant, branchField)
		result.SkippedBranches = append(result.SkippedBranches, branchName)
		return
	}

	if forceError := service.repositoryManager.DeleteBranch(executionContext, options.WorkingDirectory, branchName, true); forceError != nil {
		service.logger.Error(forceDeleteFailedMessageConstant, branchField, zap.Error(forceError))
		result.FailedBranches = append(result.FailedBranches, branchName)
		return
	}

	service.logger.Info(branchForceDeletedMessageConstant, branchField)
	result.DeletedBranches = append(result.DeletedBranches, branchName)
}

// IsUnmergedDeletionError reports whether the deletion failure stems from the
// branch containing commits not merged into any other tracked branch. The
// wording is owned by git, so the match stays behind this single predicate.
func IsUnmergedDeletionError(deletionError error) bool {
	var commandFailure execshell.CommandFailedError
	if !errors.As(deletionError, &commandFailure) {
		return false
	}
	return strings.Contains(commandFailure.Result.StandardError, unmergedErrorFragmentConstant)
}

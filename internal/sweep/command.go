package sweep

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sweeptools/sweep/internal/execshell"
	"github.com/sweeptools/sweep/internal/gitrepo"
	"github.com/sweeptools/sweep/internal/ui"
)

const (
	commandUseConstant                    = "sweep"
	commandShortDescriptionConstant       = "Prune local branches whose upstream tracking branch is gone"
	commandLongDescriptionConstant        = "sweep fetches with prune, finds local branches whose upstream tracking branch was deleted on the remote, and interactively deletes the ones you select. Branches with unmerged work require an explicit force-delete confirmation."
	commandExecutionErrorTemplateConstant = "branch sweep failed: %w"
	unexpectedArgumentsMessageConstant    = "sweep does not accept positional arguments"
	workingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
	flagRemoteNameConstant                = "remote"
	flagRemoteDescriptionConstant         = "Name of the remote to fetch and prune"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Preview deletions without making changes"
	flagAssumeYesNameConstant             = "assume-yes"
	flagAssumeYesDescriptionConstant      = "Select every candidate and skip interactive prompts"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for branch sweeping.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	RepositoryManager            RepositoryManager
	Selector                     BranchSelector
	Prompter                     ConfirmationPrompter
	WorkingDirectory             string
}

// Build constructs the sweep command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagRemoteNameConstant, defaults.RemoteName, flagRemoteDescriptionConstant)
	command.Flags().Bool(flagDryRunNameConstant, defaults.DryRun, flagDryRunDescriptionConstant)
	command.Flags().Bool(flagAssumeYesNameConstant, defaults.AssumeYes, flagAssumeYesDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := builder.resolveConfiguration()
	options, optionsError := builder.parseOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	repositoryManager, managerError := builder.resolveRepositoryManager(logger)
	if managerError != nil {
		return managerError
	}

	options.ProtectedBranches = LoadProtectedBranchSet(options.WorkingDirectory, configuration.ProtectedBranches, logger)

	service, serviceError := NewService(Dependencies{
		Logger:            logger,
		RepositoryManager: repositoryManager,
		Selector:          builder.resolveSelector(),
		Prompter:          builder.resolvePrompter(command),
	})
	if serviceError != nil {
		return serviceError
	}

	if _, sweepError := service.Sweep(command.Context(), options); sweepError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, sweepError)
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, configuration CommandConfiguration) (Options, error) {
	remoteNameValue := configuration.RemoteName
	if command.Flags().Changed(flagRemoteNameConstant) {
		flagValue, _ := command.Flags().GetString(flagRemoteNameConstant)
		remoteNameValue = strings.TrimSpace(flagValue)
	}
	if len(remoteNameValue) == 0 {
		remoteNameValue = DefaultCommandConfiguration().RemoteName
	}

	dryRunValue := configuration.DryRun
	if command.Flags().Changed(flagDryRunNameConstant) {
		dryRunValue, _ = command.Flags().GetBool(flagDryRunNameConstant)
	}

	assumeYesValue := configuration.AssumeYes
	if command.Flags().Changed(flagAssumeYesNameConstant) {
		assumeYesValue, _ = command.Flags().GetBool(flagAssumeYesNameConstant)
	}

	workingDirectory := builder.WorkingDirectory
	if len(workingDirectory) == 0 {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return Options{}, fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	return Options{
		WorkingDirectory: workingDirectory,
		RemoteName:       remoteNameValue,
		DryRun:           dryRunValue,
		AssumeYes:        assumeYesValue,
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveRepositoryManager(logger *zap.Logger) (RepositoryManager, error) {
	if builder.RepositoryManager != nil {
		return builder.RepositoryManager, nil
	}

	observers := []execshell.CommandEventObserver{}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if creationError != nil {
		return nil, creationError
	}

	return gitrepo.NewRepositoryManager(shellExecutor)
}

func (builder *CommandBuilder) resolveSelector() BranchSelector {
	if builder.Selector != nil {
		return builder.Selector
	}
	return ui.NewBranchMultiSelector()
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) ConfirmationPrompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}

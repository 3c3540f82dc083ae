package execshell

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	loggerMissingMessageConstant        = "logger not configured"
	commandRunnerMissingMessageConstant = "command runner not configured"
	commandStartedLogMessageConstant    = "shell command started"
	commandCompletedLogMessageConstant  = "shell command completed"
	commandFailedLogMessageConstant     = "shell command failed"
	logFieldCommandNameConstant         = "command_name"
	logFieldCommandArgumentsConstant    = "command_arguments"
	logFieldWorkingDirectoryConstant    = "working_directory"
	logFieldExitCodeConstant            = "exit_code"
	logFieldStandardErrorConstant       = "standard_error"
)

// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)

// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerMissingMessageConstant)

// CommandName identifies the external executable being invoked.
type CommandName string

// CommandGit names the git executable.
const CommandGit CommandName = "git"

// CommandDetails describes a single command invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	// StreamOutput mirrors the child process output to the parent terminal
	// while still capturing it in the execution result.
	StreamOutput bool
}

// ShellCommand pairs an executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a command invocation.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes shell commands and reports their results.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including its exit code and stderr.
func (failure CommandFailedError) Error() string {
	return CommandMessageFormatter{}.BuildFailureMessage(failure.Command, failure.Result)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return CommandMessageFormatter{}.BuildExecutionFailureMessage(failure.Command, failure.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs external commands with structured logging and observer notifications.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observers []CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor from the provided logger, runner, and optional observers.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observers ...CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	registeredObservers := make([]CommandEventObserver, 0, len(observers))
	for _, observer := range observers {
		if observer == nil {
			continue
		}
		registeredObservers = append(registeredObservers, observer)
	}

	return &ShellExecutor{logger: logger, runner: runner, observers: registeredObservers}, nil
}

// ExecuteGit runs the git executable with the supplied details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

func (executor *ShellExecutor) execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
	executor.notifyStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(
			commandFailedLogMessageConstant,
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Error(runError),
		)
		executionFailure := CommandExecutionError{Command: command, Cause: runError}
		executor.notifyExecutionFailed(command, executionFailure)
		return ExecutionResult{}, executionFailure
	}

	executor.notifyCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Debug(
			commandFailedLogMessageConstant,
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
			zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
		)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)
	return executionResult, nil
}

func (executor *ShellExecutor) notifyStarted(command ShellCommand) {
	for _, observer := range executor.observers {
		observer.CommandStarted(command)
	}
}

func (executor *ShellExecutor) notifyCompleted(command ShellCommand, result ExecutionResult) {
	for _, observer := range executor.observers {
		observer.CommandCompleted(command, result)
	}
}

func (executor *ShellExecutor) notifyExecutionFailed(command ShellCommand, failure error) {
	for _, observer := range executor.observers {
		observer.CommandExecutionFailed(command, failure)
	}
}

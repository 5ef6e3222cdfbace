package errors

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks across packages
var (
	// ErrNotGitRepository indicates the target path is not a git repository
	ErrNotGitRepository = errors.New("not a git repository")

	// ErrGitOperationFailed indicates a git command returned an error
	ErrGitOperationFailed = errors.New("git operation failed")

	// ErrCommandFailed indicates a non-git external command returned an error
	ErrCommandFailed = errors.New("command failed")

	// ErrInvalidConfiguration indicates an invalid or conflicting user configuration
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrCorruptCounter indicates the counter file is missing or does not hold
	// a non-negative base-10 integer
	ErrCorruptCounter = errors.New("counter file is missing or corrupt")

	// ErrSchedulerRegistration indicates the host scheduler refused the next-run task
	ErrSchedulerRegistration = errors.New("failed to register scheduled task")
)

// New returns an error carrying message.
func New(message string) error {
	return errors.New(message)
}

// Errorf formats an error; use %w to keep a cause in the chain.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Wrap prefixes err with message, keeping err matchable by Is and As.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted prefix.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is mirrors the standard library errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As mirrors the standard library errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// describeFailure renders "<what> failed[: output][: cause]".
func describeFailure(what, output string, cause error) string {
	msg := what + " failed"
	if output != "" {
		msg += ": " + output
	}
	if cause != nil {
		msg += fmt.Sprintf(": %v", cause)
	}
	return msg
}

// GitError is returned for any failed git invocation. Operation is the git
// subcommand (commit, push, config) and Output is what git wrote to stderr.
type GitError struct {
	Operation string
	Args      []string
	Err       error
	Output    string
}

func (e *GitError) Error() string {
	return describeFailure("git "+e.Operation, e.Output, e.Err)
}

func (e *GitError) Unwrap() error { return e.Err }

// NewGitError builds a GitError.
func NewGitError(operation string, args []string, err error, output string) *GitError {
	return &GitError{Operation: operation, Args: args, Err: err, Output: output}
}

// CommandError is returned for a failed external program other than git,
// for example schtasks.
type CommandError struct {
	Name   string
	Args   []string
	Err    error
	Output string
}

func (e *CommandError) Error() string {
	return describeFailure(e.Name, e.Output, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// NewCommandError builds a CommandError.
func NewCommandError(name string, args []string, err error, output string) *CommandError {
	return &CommandError{Name: name, Args: args, Err: err, Output: output}
}

// CounterError reports a counter file that could not be created, read or
// stored. Content is the raw file body when one was read.
type CounterError struct {
	Path    string
	Content string
	Err     error
}

func (e *CounterError) Error() string {
	if e.Content == "" {
		return fmt.Sprintf("counter %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("counter %s holds %q: %v", e.Path, e.Content, e.Err)
}

func (e *CounterError) Unwrap() error { return e.Err }

// NewCounterError builds a CounterError.
func NewCounterError(path, content string, err error) *CounterError {
	return &CounterError{Path: path, Content: content, Err: err}
}

// ConfigError names the setting that failed validation. Value is nil when
// the offending value is not worth echoing.
type ConfigError struct {
	Parameter string
	Value     interface{}
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %v", e.Parameter, e.Err)
	}
	return fmt.Sprintf("%s=%v: %v", e.Parameter, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError builds a ConfigError.
func NewConfigError(parameter string, value interface{}, err error) *ConfigError {
	return &ConfigError{Parameter: parameter, Value: value, Err: err}
}

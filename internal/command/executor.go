package command

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bashhack/commitpulse/internal/errors"
)

// CommandExecutor defines an interface for executing commands
type CommandExecutor interface {
	// Execute runs a command and reports whether it exited successfully
	Execute(ctx context.Context, cmd *exec.Cmd) error

	// ExecuteWithOutput runs a command and returns its stdout
	ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error)
}

// ExecExecutor is the default implementation of CommandExecutor
// that delegates to the os/exec package
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Execute implements CommandExecutor.Execute. Stderr is captured so that a
// failure carries the command's own diagnostics.
func (e *ExecExecutor) Execute(ctx context.Context, cmd *exec.Cmd) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var stderr bytes.Buffer
	if cmd.Stderr == nil {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		return wrapFailure(cmd, err, stderr.String())
	}
	return nil
}

// ExecuteWithOutput implements CommandExecutor.ExecuteWithOutput
func (e *ExecExecutor) ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", wrapFailure(cmd, err, stderr.String())
	}

	return stdout.String(), nil
}

// wrapFailure converts a failed command into a GitError for git invocations
// and a CommandError for everything else.
func wrapFailure(cmd *exec.Cmd, err error, output string) error {
	name := ""
	if len(cmd.Args) > 0 {
		name = cmd.Args[0]
	}

	var args []string
	if len(cmd.Args) > 1 {
		args = cmd.Args[1:]
	}

	output = strings.TrimSpace(output)

	if isGit(name) {
		wrappedErr := errors.Wrap(errors.ErrGitOperationFailed, err.Error())
		return errors.NewGitError(GitOperation(args), args, wrappedErr, output)
	}

	wrappedErr := errors.Wrap(errors.ErrCommandFailed, err.Error())
	return errors.NewCommandError(name, args, wrappedErr, output)
}

// GitOperation returns the git subcommand in args, skipping a leading
// "-C <path>" pair.
func GitOperation(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-C" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}

func isGit(name string) bool {
	base := strings.TrimSuffix(filepath.Base(name), ".exe")
	return base == "git"
}

package git

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bashhack/commitpulse/internal/command"
	"github.com/bashhack/commitpulse/internal/errors"
)

// Client runs git commands against a single repository
type Client struct {
	repoPath string
	executor command.CommandExecutor
}

// NewClient creates a Client with the default executor
func NewClient(repoPath string) *Client {
	return NewClientWithExecutor(repoPath, command.NewExecExecutor())
}

// NewClientWithExecutor creates a Client with a custom executor
func NewClientWithExecutor(repoPath string, executor command.CommandExecutor) *Client {
	return &Client{
		repoPath: repoPath,
		executor: executor,
	}
}

// RepoPath returns the repository the client operates on
func (c *Client) RepoPath() string {
	return c.repoPath
}

// IsRepository checks if the given path is a git repository
func IsRepository(path string) (bool, error) {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--is-inside-work-tree")
	executor := command.NewExecExecutor()
	output, err := executor.ExecuteWithOutput(context.Background(), cmd)
	if err != nil {
		// rev-parse exits non-zero outside a work tree; that is an answer, not a failure
		if errors.Is(err, errors.ErrGitOperationFailed) {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(output) == "true", nil
}

// Get returns the value of a git configuration key as seen from the repository.
// A key that is not set is reported as an error by git itself.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	output, err := c.runGitCommandWithOutput(ctx, "config", key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// SetGlobal writes a git configuration key for the current user
func (c *Client) SetGlobal(ctx context.Context, key, value string) error {
	cmd := exec.CommandContext(ctx, "git", "config", "--global", key, value)
	return c.executor.Execute(ctx, cmd)
}

// AddAll stages every new, modified and deleted path in the working tree
func (c *Client) AddAll(ctx context.Context) error {
	return c.runGitCommand(ctx, "add", "-A")
}

// HasStagedChanges reports whether the index differs from HEAD
func (c *Client) HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := c.runGitCommandWithOutput(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}

// Commit records the staged changes with the given message
func (c *Client) Commit(ctx context.Context, message string, allowEmpty bool) error {
	args := []string{"commit", "-m", message}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}
	return c.runGitCommand(ctx, args...)
}

// Push publishes the current branch. An empty remote defers to the branch's
// configured upstream.
func (c *Client) Push(ctx context.Context, remote string) error {
	args := []string{"push"}
	if remote != "" {
		args = append(args, remote)
	}
	return c.runGitCommand(ctx, args...)
}

// CommitCount returns the number of commits reachable from HEAD
func (c *Client) CommitCount(ctx context.Context) (int, error) {
	output, err := c.runGitCommandWithOutput(ctx, "rev-list", "--count", "HEAD")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil {
		return 0, errors.Wrapf(err, "unexpected rev-list output %q", output)
	}
	return n, nil
}

// runGitCommand executes a git command in the repository directory.
func (c *Client) runGitCommand(ctx context.Context, args ...string) error {
	baseArgs := []string{"-C", c.repoPath}
	cmd := exec.CommandContext(ctx, "git", append(baseArgs, args...)...)
	cmd.Dir = c.repoPath
	return c.executor.Execute(ctx, cmd)
}

// runGitCommandWithOutput executes a git command and returns its output.
func (c *Client) runGitCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	baseArgs := []string{"-C", c.repoPath}
	cmd := exec.CommandContext(ctx, "git", append(baseArgs, args...)...)
	cmd.Dir = c.repoPath
	return c.executor.ExecuteWithOutput(ctx, cmd)
}

// Package publish stages, commits and pushes the changes of one cycle.
package publish

import (
	"context"

	"github.com/bashhack/commitpulse/internal/common"
	"github.com/bashhack/commitpulse/internal/errors"
	"github.com/bashhack/commitpulse/internal/policy"
)

// Repository is the subset of git.Client the publisher drives
type Repository interface {
	AddAll(ctx context.Context) error
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string, allowEmpty bool) error
	Push(ctx context.Context, remote string) error
}

// Options configures a Publisher
type Options struct {
	// Messages is the pool a message is drawn from when none is given
	Messages []string

	// Picker chooses from Messages
	Picker policy.Picker

	// Remote is passed to git push; empty means the branch's upstream
	Remote string

	// AllowEmpty commits even when nothing is staged
	AllowEmpty bool
}

// Result describes one Commit call
type Result struct {
	Message   string
	Committed bool
}

// Publisher records changes as commits and publishes them
type Publisher struct {
	repo   Repository
	opts   Options
	logger common.Logger
}

// NewPublisher creates a Publisher. The message pool must not be empty.
func NewPublisher(repo Repository, opts Options, logger common.Logger) (*Publisher, error) {
	if len(opts.Messages) == 0 {
		return nil, errors.New("commit message pool is empty")
	}
	if opts.Picker == nil {
		opts.Picker = policy.NewUniformPicker(nil)
	}
	return &Publisher{repo: repo, opts: opts, logger: logger}, nil
}

// DrawMessage picks one message from the pool
func (p *Publisher) DrawMessage() string {
	return p.opts.Messages[p.opts.Picker.Pick(len(p.opts.Messages))]
}

// Commit stages every pending change and commits it. An empty message is
// replaced by one drawn from the pool. A clean tree is skipped rather than
// reported as a failure, unless AllowEmpty is set. Staging and commit
// failures are returned.
func (p *Publisher) Commit(ctx context.Context, message string) (Result, error) {
	if message == "" {
		message = p.DrawMessage()
	}
	result := Result{Message: message}

	if err := p.repo.AddAll(ctx); err != nil {
		p.logger.Warning("Failed to stage changes: %v", err)
		return result, errors.Wrap(err, "failed to stage changes")
	}

	if !p.opts.AllowEmpty {
		hasChanges, err := p.repo.HasStagedChanges(ctx)
		if err != nil {
			return result, errors.Wrap(err, "failed to check for staged changes")
		}
		if !hasChanges {
			p.logger.InfoToUser("Nothing to commit, skipping %q", message)
			return result, nil
		}
	}

	if err := p.repo.Commit(ctx, message, p.opts.AllowEmpty); err != nil {
		p.logger.Warning("Failed to create commit: %v", err)
		return result, errors.Wrap(err, "failed to create commit")
	}

	result.Committed = true
	p.logger.Success("Committed: %s", message)
	return result, nil
}

// Push publishes the current branch. Failure is reported together with the
// remote's diagnostics but never returned; the caller carries on either way.
func (p *Publisher) Push(ctx context.Context) bool {
	err := p.repo.Push(ctx, p.opts.Remote)
	if err == nil {
		p.logger.Success("Changes pushed to remote successfully.")
		return true
	}

	p.logger.Warning("Push failed: %v", err)
	p.logger.WarningToUser("Error pushing to remote:\n%s", diagnostics(err))
	return false
}

// diagnostics prefers the captured stderr of a failed git command
func diagnostics(err error) string {
	var gitErr *errors.GitError
	if errors.As(err, &gitErr) && gitErr.Output != "" {
		return gitErr.Output
	}
	return err.Error()
}

// Package mutation defines the file changes a run can make before each commit.
package mutation

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bashhack/commitpulse/internal/errors"
	"github.com/bashhack/commitpulse/internal/policy"
)

// Action is one repository-changing effect. Label is descriptive only.
type Action struct {
	Label string
	Apply func() error
}

// Incrementer is the part of the counter store the increment action needs
type Incrementer interface {
	Increment() (int, error)
}

// IncrementCounter returns the action that bumps the persisted counter
func IncrementCounter(store Incrementer) Action {
	return Action{
		Label: "Update number and documentation",
		Apply: func() error {
			_, err := store.Increment()
			return err
		},
	}
}

// TouchMarker returns an action that creates path as an empty file if absent
// and refreshes its modification time. Repeated calls never fail on an
// existing file and never truncate it.
func TouchMarker(label, path string) Action {
	return Action{
		Label: label,
		Apply: func() error {
			return touch(path)
		},
	}
}

// DefaultActions returns the three stock actions for a repository
func DefaultActions(store Incrementer, repoPath, configMarker, systemMarker string) []Action {
	return []Action{
		IncrementCounter(store),
		TouchMarker("Update configuration settings", filepath.Join(repoPath, configMarker)),
		TouchMarker("Update system files", filepath.Join(repoPath, systemMarker)),
	}
}

// Selector picks one action per commit
type Selector struct {
	actions []Action
	picker  policy.Picker
}

// NewSelector creates a Selector over a non-empty action set
func NewSelector(actions []Action, picker policy.Picker) (*Selector, error) {
	if len(actions) == 0 {
		return nil, errors.New("mutation selector needs at least one action")
	}
	return &Selector{actions: actions, picker: picker}, nil
}

// Choose returns one action; every call is an independent pick
func (s *Selector) Choose() Action {
	return s.actions[s.picker.Pick(len(s.actions))]
}

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to create marker %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close marker %s", path)
	}

	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		return errors.Wrapf(err, "failed to touch marker %s", path)
	}
	return nil
}

package schedule

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bashhack/commitpulse/internal/common"
	"github.com/bashhack/commitpulse/internal/policy"
)

// Options configures a Scheduler
type Options struct {
	// TaskName is the fixed registration name; re-registering replaces it
	TaskName string

	// Args are appended to the entry point in the registered command
	Args []string

	// Hour and Minute draw the trigger time
	Hour   policy.IntPolicy
	Minute policy.IntPolicy

	// EntryPoint resolves the program's own executable. Defaults to os.Executable.
	EntryPoint func() (string, error)
}

// Outcome reports what ScheduleNext did
type Outcome struct {
	Supported  bool
	Registered bool
	Task       Task
	Err        error
}

// Scheduler registers the next run of the program
type Scheduler struct {
	registrar Registrar
	opts      Options
	logger    common.Logger
}

// NewScheduler creates a Scheduler
func NewScheduler(registrar Registrar, opts Options, logger common.Logger) *Scheduler {
	if opts.EntryPoint == nil {
		opts.EntryPoint = os.Executable
	}
	if opts.Hour == nil {
		opts.Hour, _ = policy.NewUniform(0, 23, nil)
	}
	if opts.Minute == nil {
		opts.Minute, _ = policy.NewUniform(0, 59, nil)
	}
	return &Scheduler{registrar: registrar, opts: opts, logger: logger}
}

// ScheduleNext registers a daily re-invocation at a freshly drawn time.
// Failures are reported and swallowed.
func (s *Scheduler) ScheduleNext(ctx context.Context) Outcome {
	if !s.registrar.Supported() {
		s.logger.WarningToUser("Automatic scheduling is only available with the Windows Task Scheduler. Please set up cron (or launchd) manually to run this program daily.")
		return Outcome{Supported: false}
	}

	outcome := Outcome{Supported: true}

	entry, err := s.entryPoint()
	if err != nil {
		s.logger.WarningToUser("Error setting up scheduled task: %v", err)
		outcome.Err = err
		return outcome
	}

	task := Task{
		Name:    s.opts.TaskName,
		Command: entry,
		Args:    s.opts.Args,
		Hour:    s.opts.Hour.Draw(),
		Minute:  s.opts.Minute.Draw(),
	}
	outcome.Task = task

	s.logger.Info("Registering %q with %s: %s at %s", task.Name, s.registrar.Name(), task.CommandLine(), task.Time())

	if err := s.registrar.Register(ctx, task); err != nil {
		s.logger.WarningToUser("Error setting up scheduled task: %v", err)
		outcome.Err = err
		return outcome
	}

	outcome.Registered = true
	s.logger.Success("Task scheduled to run at %s daily", task.Time())
	return outcome
}

func (s *Scheduler) entryPoint() (string, error) {
	path, err := s.opts.EntryPoint()
	if err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

package schedule

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bashhack/commitpulse/internal/command"
	"github.com/bashhack/commitpulse/internal/errors"
)

// Task is a daily invocation of Command with Args at Hour:Minute
type Task struct {
	Name    string
	Command string
	Args    []string
	Hour    int
	Minute  int
}

// Time returns the trigger time as HH:MM
func (t Task) Time() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// CommandLine returns Command and Args joined, quoting anything with spaces
func (t Task) CommandLine() string {
	parts := make([]string, 0, len(t.Args)+1)
	parts = append(parts, quote(t.Command))
	for _, a := range t.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

// Registrar is a recurring-task capability of the host
type Registrar interface {
	// Name identifies the facility in status output
	Name() string

	// Supported reports whether Register can do anything on this host
	Supported() bool

	// Register creates or replaces the task
	Register(ctx context.Context, task Task) error
}

// NewRegistrar picks the registrar for the given GOOS value
func NewRegistrar(goos string, executor command.CommandExecutor) Registrar {
	if goos == "windows" {
		return NewSchtasksRegistrar(executor)
	}
	return NewNoticeRegistrar(goos)
}

// SchtasksRegistrar registers tasks with the Windows Task Scheduler
type SchtasksRegistrar struct {
	executor command.CommandExecutor
}

// NewSchtasksRegistrar creates a SchtasksRegistrar
func NewSchtasksRegistrar(executor command.CommandExecutor) *SchtasksRegistrar {
	return &SchtasksRegistrar{executor: executor}
}

// Name implements Registrar
func (r *SchtasksRegistrar) Name() string { return "Windows Task Scheduler" }

// Supported implements Registrar
func (r *SchtasksRegistrar) Supported() bool { return true }

// Register implements Registrar. /f overwrites an existing task of the same name.
func (r *SchtasksRegistrar) Register(ctx context.Context, task Task) error {
	cmd := exec.CommandContext(ctx, "schtasks",
		"/create",
		"/tn", task.Name,
		"/tr", task.CommandLine(),
		"/sc", "daily",
		"/st", task.Time(),
		"/f",
	)
	if err := r.executor.Execute(ctx, cmd); err != nil {
		return errors.Wrap(errors.ErrSchedulerRegistration, err.Error())
	}
	return nil
}

// NoticeRegistrar stands in on hosts without a supported scheduler
type NoticeRegistrar struct {
	goos string
}

// NewNoticeRegistrar creates a NoticeRegistrar for the named platform
func NewNoticeRegistrar(goos string) *NoticeRegistrar {
	return &NoticeRegistrar{goos: goos}
}

// Name implements Registrar
func (r *NoticeRegistrar) Name() string { return "manual setup (" + r.goos + ")" }

// Supported implements Registrar
func (r *NoticeRegistrar) Supported() bool { return false }

// Register implements Registrar and always fails
func (r *NoticeRegistrar) Register(ctx context.Context, task Task) error {
	return errors.Wrapf(errors.ErrSchedulerRegistration, "automatic scheduling is not supported on %s", r.goos)
}

func quote(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}

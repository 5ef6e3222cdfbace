package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/uuid"

	"github.com/bashhack/commitpulse/internal/activity"
	"github.com/bashhack/commitpulse/internal/command"
	"github.com/bashhack/commitpulse/internal/common"
	"github.com/bashhack/commitpulse/internal/config"
	"github.com/bashhack/commitpulse/internal/counter"
	internalErrors "github.com/bashhack/commitpulse/internal/errors"
	"github.com/bashhack/commitpulse/internal/git"
	"github.com/bashhack/commitpulse/internal/identity"
	"github.com/bashhack/commitpulse/internal/logger"
	"github.com/bashhack/commitpulse/internal/mutation"
	"github.com/bashhack/commitpulse/internal/policy"
	"github.com/bashhack/commitpulse/internal/publish"
	"github.com/bashhack/commitpulse/internal/schedule"
)

// Runner performs one commitpulse run
type Runner interface {
	Run(ctx context.Context) (activity.Report, error)
	PrintSummary()
}

// Logger alias to common.Logger
type Logger = common.Logger

// AppOptions contains app configuration and dependencies
type AppOptions struct {
	// Required
	Config *config.Config

	// Optional components
	Logger Logger
	Runner Runner

	// I/O dependencies
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	Exit         func(code int)
	ExecLookPath func(file string) (string, error)
	IsRepository func(string) (bool, error)
	Executor     command.CommandExecutor
	Sleeper      activity.Sleeper
	GOOS         string
	NewRunID     func() string
}

// App is the main commitpulse application
type App struct {
	Config *config.Config
	Logger Logger
	Runner Runner
	RunID  string

	// I/O streams
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	exit         func(code int)
	execLookPath func(file string) (string, error)
	isRepository func(string) (bool, error)
	executor     command.CommandExecutor
	sleeper      activity.Sleeper
	goos         string
	newRunID     func() string

	initialized bool
	ran         bool
}

// NewDefaultApp creates an App with standard dependencies
func NewDefaultApp(versionInfo config.VersionInfo) *App {
	cfg := config.New()
	cfg.VersionInfo = versionInfo
	cfg.LoadFromEnvironment()

	opts := AppOptions{
		Config:       cfg,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Exit:         os.Exit,
		ExecLookPath: exec.LookPath,
		IsRepository: git.IsRepository,
	}

	return NewApp(opts)
}

// NewApp creates an App with custom dependencies
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:       opts.Config,
		Logger:       opts.Logger,
		Runner:       opts.Runner,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		exit:         opts.Exit,
		execLookPath: opts.ExecLookPath,
		isRepository: opts.IsRepository,
		executor:     opts.Executor,
		sleeper:      opts.Sleeper,
		goos:         opts.GOOS,
		newRunID:     opts.NewRunID,
	}

	// Set defaults for nil dependencies
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.execLookPath == nil {
		app.execLookPath = exec.LookPath
	}
	if app.isRepository == nil {
		app.isRepository = git.IsRepository
	}
	if app.executor == nil {
		app.executor = command.NewExecExecutor()
	}
	if app.sleeper == nil {
		app.sleeper = activity.WallClock
	}
	if app.goos == "" {
		app.goos = runtime.GOOS
	}
	if app.newRunID == nil {
		app.newRunID = uuid.NewString
	}

	return app
}

// Initialize finalizes the configuration and builds the components not
// provided during construction. Calling it again is a no-op.
func (a *App) Initialize() error {
	if a.initialized || a.Config.Version {
		return nil
	}

	if err := a.Config.Finalize(); err != nil {
		// Config.Finalize() already returns a properly wrapped error
		if internalErrors.Is(err, internalErrors.ErrInvalidConfiguration) {
			return err
		}
		return internalErrors.Wrap(internalErrors.ErrInvalidConfiguration, err.Error())
	}

	a.RunID = a.newRunID()

	if a.Logger == nil {
		l := logger.NewWithOutput(a.Config.Debug, a.Config.LogFile, a.Config.Verbose, a.Stdout, a.Stderr)
		a.Logger = l.WithRunID(a.RunID)
	}

	if a.Runner == nil {
		runner, err := a.buildRunner()
		if err != nil {
			return fmt.Errorf("failed to create commitpulse run: %w", err)
		}
		a.Runner = runner
	}

	a.initialized = true
	return nil
}

// buildRunner wires every component against the configured repository
func (a *App) buildRunner() (*activity.Orchestrator, error) {
	cfg := a.Config

	policies, err := policy.New(cfg.Ranges(), nil)
	if err != nil {
		return nil, internalErrors.NewConfigError("ranges", cfg.Ranges(), internalErrors.Wrap(internalErrors.ErrInvalidConfiguration, err.Error()))
	}

	client := git.NewClientWithExecutor(cfg.RepoPath, a.executor)
	store := counter.New(cfg.CounterPath())

	selector, err := mutation.NewSelector(
		mutation.DefaultActions(store, cfg.RepoPath, cfg.ConfigMarker, cfg.SystemMarker),
		policies.Action,
	)
	if err != nil {
		return nil, err
	}

	publisher, err := publish.NewPublisher(client, publish.Options{
		Messages:   cfg.Messages,
		Picker:     policies.Message,
		Remote:     cfg.Remote,
		AllowEmpty: cfg.AllowEmpty,
	}, a.Logger)
	if err != nil {
		return nil, err
	}

	var scheduler activity.NextRunScheduler
	if !cfg.NoSchedule {
		scheduler = schedule.NewScheduler(schedule.NewRegistrar(a.goos, a.executor), schedule.Options{
			TaskName: cfg.TaskName,
			Args:     []string{"-repo", cfg.RepoPath},
			Hour:     policies.Hour,
			Minute:   policies.Minute,
		}, a.Logger)
	}

	return activity.New(activity.Deps{
		Identity: identity.NewConfigurator(client, client, identity.Identity{
			Name:  cfg.FallbackName,
			Email: cfg.FallbackEmail,
		}, a.Logger),
		Counter:      store,
		Actions:      selector,
		Publisher:    publisher,
		Scheduler:    scheduler,
		CommitCount:  policies.CommitCount,
		DelaySeconds: policies.DelaySeconds,
		Sleeper:      a.sleeper,
		Logger:       a.Logger,
	})
}

// Run executes the application with the given context
func (a *App) Run(ctx context.Context) error {
	if err := a.Initialize(); err != nil {
		return err
	}

	if a.Config.Version {
		a.ShowVersion()
		return nil
	}

	// Ensure we always close the logger, even on early error paths
	defer func() {
		if err := a.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Error during cleanup: %v\n", err)
		}
	}()

	if err := a.checkRequiredCommands(); err != nil {
		_, _ = fmt.Fprintf(a.Stderr, "❌ Error: %v. Please install it and try again.\n", err)
		return err
	}

	isRepo, err := a.isRepository(a.Config.RepoPath)
	if err != nil {
		a.Logger.Warning("Failed to check if path is a git repository: %v", err)
		return internalErrors.Wrap(internalErrors.ErrGitOperationFailed, err.Error())
	}
	if !isRepo {
		return internalErrors.Wrap(internalErrors.ErrNotGitRepository, a.Config.RepoPath)
	}
	a.Logger.Info("Git repository verified: %s", a.Config.RepoPath)

	a.ran = true
	_, err = a.Runner.Run(ctx)
	return err
}

// PrintSummary shows the run summary if a run took place
func (a *App) PrintSummary() {
	if a.ran && a.Runner != nil {
		a.Runner.PrintSummary()
	}
}

// ShowVersion displays version information
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "commitpulse %s (%s) built on %s\n",
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date)
}

// checkRequiredCommands verifies git is available in PATH
func (a *App) checkRequiredCommands() error {
	_, err := a.execLookPath("git")
	if err != nil {
		return fmt.Errorf("git is not found in PATH")
	}
	return nil
}

// Close releases resources held by the App
func (a *App) Close() error {
	var errs []error

	if a.Logger != nil {
		if l, ok := a.Logger.(interface{ Close() error }); ok {
			if err := l.Close(); err != nil {
				_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to close logger: %v\n", err)
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CleanupOnSignal closes resources and shows the summary on interruption
func (a *App) CleanupOnSignal() {
	a.PrintSummary()

	if err := a.Close(); err != nil {
		_, _ = fmt.Fprintf(a.Stderr, "❌ Error during cleanup: %v\n", err)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/bashhack/commitpulse/internal/activity"
	"github.com/bashhack/commitpulse/internal/config"
)

// MockRunner stands in for the orchestrator
type MockRunner struct {
	RunCalled     bool
	SummaryCalled bool
	Report        activity.Report
	RunErr        error
}

func (m *MockRunner) Run(ctx context.Context) (activity.Report, error) {
	m.RunCalled = true
	return m.Report, m.RunErr
}

func (m *MockRunner) PrintSummary() {
	m.SummaryCalled = true
}

// MockLogger records every line it is given, keyed by method name
type MockLogger struct {
	Lines       map[string][]string
	CloseCalled bool
	CloseErr    error
}

func (m *MockLogger) record(kind, format string, args []interface{}) {
	if m.Lines == nil {
		m.Lines = make(map[string][]string)
	}
	m.Lines[kind] = append(m.Lines[kind], fmt.Sprintf(format, args...))
}

func (m *MockLogger) Info(format string, args ...interface{})    { m.record("Info", format, args) }
func (m *MockLogger) Warning(format string, args ...interface{}) { m.record("Warning", format, args) }
func (m *MockLogger) Error(format string, args ...interface{})   { m.record("Error", format, args) }
func (m *MockLogger) InfoToUser(format string, args ...interface{}) {
	m.record("InfoToUser", format, args)
}
func (m *MockLogger) WarningToUser(format string, args ...interface{}) {
	m.record("WarningToUser", format, args)
}
func (m *MockLogger) Success(format string, args ...interface{}) { m.record("Success", format, args) }
func (m *MockLogger) StatusMessage(format string, args ...interface{}) {
	m.record("StatusMessage", format, args)
}

func (m *MockLogger) Close() error {
	m.CloseCalled = true
	return m.CloseErr
}

// mockExecLookPath resolves only the programs it was given
type mockExecLookPath struct {
	lookupMap map[string]string
	lookupErr map[string]error
}

func (m *mockExecLookPath) LookPath(file string) (string, error) {
	if err, ok := m.lookupErr[file]; ok {
		return "", err
	}
	if path, ok := m.lookupMap[file]; ok {
		return path, nil
	}
	return "", fmt.Errorf("command not found: %s", file)
}

// NewTestApp creates an App over a temporary directory with a runner and
// logger that do nothing
func NewTestApp(t *testing.T) *App {
	t.Helper()

	cfg := config.New()
	cfg.RepoPath = t.TempDir()
	cfg.LogFile = filepath.Join(t.TempDir(), "commitpulse.log")

	return NewApp(AppOptions{
		Config:       cfg,
		Logger:       &MockLogger{},
		Runner:       &MockRunner{},
		Exit:         func(int) {},
		ExecLookPath: func(string) (string, error) { return "/usr/bin/git", nil },
		IsRepository: func(string) (bool, error) { return true, nil },
		NewRunID:     func() string { return "test-run" },
	})
}

// WithIsRepository mocks the isRepository function
func WithIsRepository(app *App, fn func(string) (bool, error)) *App {
	app.isRepository = fn
	return app
}

// WithExecLookPath mocks the execLookPath function
func WithExecLookPath(app *App, fn func(string) (string, error)) *App {
	app.execLookPath = fn
	return app
}

// isolateGit points git at an empty global config for the duration of the test
func isolateGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	globalConfig := filepath.Join(t.TempDir(), "gitconfig")
	if err := os.WriteFile(globalConfig, nil, 0644); err != nil {
		t.Fatalf("Failed to create global config: %v", err)
	}
	t.Setenv("GIT_CONFIG_GLOBAL", globalConfig)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
}

// withGitRepo creates a fresh repository with a local identity
func withGitRepo(t *testing.T) string {
	t.Helper()

	isolateGit(t)
	repo := t.TempDir()
	for _, args := range [][]string{
		{"init", repo},
		{"-C", repo, "config", "user.name", "Test User"},
		{"-C", repo, "config", "user.email", "test@example.com"},
	} {
		if out, err := exec.Command("git", args...).CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}
	return repo
}

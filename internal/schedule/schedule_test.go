package schedule

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/bashhack/commitpulse/internal/command"
	cpErrors "github.com/bashhack/commitpulse/internal/errors"
	"github.com/bashhack/commitpulse/internal/logger"
	"github.com/bashhack/commitpulse/internal/policy"
)

// MockRegistrar records registration requests
type MockRegistrar struct {
	SupportedValue bool
	RegisterErr    error
	Tasks          []Task
}

func (m *MockRegistrar) Name() string    { return "mock" }
func (m *MockRegistrar) Supported() bool { return m.SupportedValue }

func (m *MockRegistrar) Register(ctx context.Context, task Task) error {
	m.Tasks = append(m.Tasks, task)
	return m.RegisterErr
}

func fixedEntryPoint() (string, error) {
	return "/opt/commitpulse/commitpulse", nil
}

func TestNewRegistrar(t *testing.T) {
	tests := map[string]struct {
		goos      string
		supported bool
	}{
		"windows": {goos: "windows", supported: true},
		"linux":   {goos: "linux", supported: false},
		"darwin":  {goos: "darwin", supported: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewRegistrar(test.goos, command.NewMockCommandExecutor())
			if r.Supported() != test.supported {
				t.Errorf("Expected Supported()=%v for %s", test.supported, test.goos)
			}
			if r.Name() == "" {
				t.Error("Expected registrar to have a name")
			}
		})
	}
}

func TestSchtasksRegistrarArguments(t *testing.T) {
	mock := command.NewMockCommandExecutor()
	r := NewSchtasksRegistrar(mock)

	task := Task{
		Name:    "DailyNumberUpdate",
		Command: `C:\Program Files\commitpulse\commitpulse.exe`,
		Args:    []string{"-repo", `C:\src\repo`},
		Hour:    7,
		Minute:  5,
	}

	if err := r.Register(context.Background(), task); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if len(mock.Commands) != 1 {
		t.Fatalf("Expected one command, got %d", len(mock.Commands))
	}

	got := mock.Args()[0]
	want := []string{
		"/create",
		"/tn", "DailyNumberUpdate",
		"/tr", `"C:\Program Files\commitpulse\commitpulse.exe" -repo C:\src\repo`,
		"/sc", "daily",
		"/st", "07:05",
		"/f",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Unexpected schtasks arguments:\n got: %q\nwant: %q", got, want)
	}
}

func TestSchtasksRegistrarFailure(t *testing.T) {
	mock := command.NewMockCommandExecutor()
	mock.ExecuteFn = func(ctx context.Context, cmd *exec.Cmd) error {
		return cpErrors.NewCommandError("schtasks", nil, cpErrors.ErrCommandFailed, "ERROR: Access is denied.")
	}

	err := NewSchtasksRegistrar(mock).Register(context.Background(), Task{Name: "x"})
	if !cpErrors.Is(err, cpErrors.ErrSchedulerRegistration) {
		t.Errorf("Expected ErrSchedulerRegistration, got %v", err)
	}
	if !strings.Contains(err.Error(), "Access is denied") {
		t.Errorf("Expected scheduler diagnostics in error, got %v", err)
	}
}

func TestNoticeRegistrarRefuses(t *testing.T) {
	r := NewNoticeRegistrar("linux")
	if err := r.Register(context.Background(), Task{}); !cpErrors.Is(err, cpErrors.ErrSchedulerRegistration) {
		t.Errorf("Expected ErrSchedulerRegistration, got %v", err)
	}
}

func TestTaskFormatting(t *testing.T) {
	task := Task{Command: "/usr/local/bin/commitpulse", Args: []string{"-repo", "/home/me/my repo"}, Hour: 0, Minute: 9}

	if task.Time() != "00:09" {
		t.Errorf("Expected 00:09, got %s", task.Time())
	}
	if got := task.CommandLine(); got != `/usr/local/bin/commitpulse -repo "/home/me/my repo"` {
		t.Errorf("Unexpected command line %q", got)
	}
}

func TestScheduleNext(t *testing.T) {
	tests := map[string]struct {
		registrar        *MockRegistrar
		entryPoint       func() (string, error)
		expectSupported  bool
		expectRegistered bool
		expectRequests   int
	}{
		"supported and registered": {
			registrar:        &MockRegistrar{SupportedValue: true},
			entryPoint:       fixedEntryPoint,
			expectSupported:  true,
			expectRegistered: true,
			expectRequests:   1,
		},
		"registration refused": {
			registrar:        &MockRegistrar{SupportedValue: true, RegisterErr: cpErrors.ErrSchedulerRegistration},
			entryPoint:       fixedEntryPoint,
			expectSupported:  true,
			expectRegistered: false,
			expectRequests:   1,
		},
		"entry point unresolvable": {
			registrar:        &MockRegistrar{SupportedValue: true},
			entryPoint:       func() (string, error) { return "", errors.New("no executable") },
			expectSupported:  true,
			expectRegistered: false,
			expectRequests:   0,
		},
		"unsupported platform": {
			registrar:        &MockRegistrar{SupportedValue: false},
			entryPoint:       fixedEntryPoint,
			expectSupported:  false,
			expectRegistered: false,
			expectRequests:   0,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewScheduler(test.registrar, Options{
				TaskName:   "DailyNumberUpdate",
				Args:       []string{"-repo", "/repo"},
				EntryPoint: test.entryPoint,
			}, logger.NewNop())

			outcome := s.ScheduleNext(context.Background())

			if outcome.Supported != test.expectSupported {
				t.Errorf("Expected Supported=%v, got %v", test.expectSupported, outcome.Supported)
			}
			if outcome.Registered != test.expectRegistered {
				t.Errorf("Expected Registered=%v, got %v", test.expectRegistered, outcome.Registered)
			}
			if len(test.registrar.Tasks) != test.expectRequests {
				t.Fatalf("Expected %d registration requests, got %d", test.expectRequests, len(test.registrar.Tasks))
			}
			if test.expectRequests == 0 {
				return
			}

			task := test.registrar.Tasks[0]
			if task.Name != "DailyNumberUpdate" {
				t.Errorf("Expected fixed task name, got %q", task.Name)
			}
			if task.Command != "/opt/commitpulse/commitpulse" {
				t.Errorf("Expected entry point as command, got %q", task.Command)
			}
			if task.Hour < 0 || task.Hour > 23 || task.Minute < 0 || task.Minute > 59 {
				t.Errorf("Trigger time %s out of range", task.Time())
			}
		})
	}
}

func TestScheduleNextUsesTimePolicies(t *testing.T) {
	registrar := &MockRegistrar{SupportedValue: true}
	s := NewScheduler(registrar, Options{
		TaskName:   "DailyNumberUpdate",
		Hour:       policy.Fixed(23),
		Minute:     policy.Fixed(59),
		EntryPoint: fixedEntryPoint,
	}, logger.NewNop())

	outcome := s.ScheduleNext(context.Background())
	if outcome.Task.Time() != "23:59" {
		t.Errorf("Expected 23:59, got %s", outcome.Task.Time())
	}
}

func TestScheduleNextOverwritesSameTaskName(t *testing.T) {
	registrar := &MockRegistrar{SupportedValue: true}
	s := NewScheduler(registrar, Options{TaskName: "DailyNumberUpdate", EntryPoint: fixedEntryPoint}, logger.NewNop())

	s.ScheduleNext(context.Background())
	s.ScheduleNext(context.Background())

	if len(registrar.Tasks) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(registrar.Tasks))
	}
	if registrar.Tasks[0].Name != registrar.Tasks[1].Name {
		t.Error("Expected every registration to reuse the same task name")
	}
}

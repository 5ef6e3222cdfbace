package command

import (
	"context"
	"os/exec"
)

// MockCommandExecutor records every command it is handed and runs nothing.
// Set ExecuteFn or ExecuteWithOutputFn to script results; otherwise Execute
// succeeds and ExecuteWithOutput returns Output.
type MockCommandExecutor struct {
	Output              string
	Commands            []*exec.Cmd
	ExecuteFn           func(ctx context.Context, cmd *exec.Cmd) error
	ExecuteWithOutputFn func(ctx context.Context, cmd *exec.Cmd) (string, error)
}

func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{}
}

func (m *MockCommandExecutor) Execute(ctx context.Context, cmd *exec.Cmd) error {
	m.Commands = append(m.Commands, cmd)
	if m.ExecuteFn == nil {
		return nil
	}
	return m.ExecuteFn(ctx, cmd)
}

func (m *MockCommandExecutor) ExecuteWithOutput(ctx context.Context, cmd *exec.Cmd) (string, error) {
	m.Commands = append(m.Commands, cmd)
	if m.ExecuteWithOutputFn == nil {
		return m.Output, nil
	}
	return m.ExecuteWithOutputFn(ctx, cmd)
}

// Args returns each recorded command line minus the program name.
func (m *MockCommandExecutor) Args() [][]string {
	out := make([][]string, len(m.Commands))
	for i, cmd := range m.Commands {
		if len(cmd.Args) > 1 {
			out[i] = cmd.Args[1:]
		}
	}
	return out
}

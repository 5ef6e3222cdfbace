package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/bashhack/commitpulse/internal/logger"
)

type mockSource struct {
	values  map[string]string
	lookups []string
}

func (m *mockSource) Get(ctx context.Context, key string) (string, error) {
	m.lookups = append(m.lookups, key)
	v, ok := m.values[key]
	if !ok {
		return "", errors.New("exit status 1")
	}
	return v, nil
}

type mockSink struct {
	writes map[string]string
	err    error
}

func (m *mockSink) SetGlobal(ctx context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	if m.writes == nil {
		m.writes = make(map[string]string)
	}
	m.writes[key] = value
	return nil
}

func TestEnsure(t *testing.T) {
	fallback := Identity{Name: "Fallback", Email: "fallback@example.com"}

	tests := map[string]struct {
		existing      map[string]string
		expectWrites  bool
		expectLookups int
	}{
		"both configured": {
			existing:      map[string]string{NameKey: "Jane", EmailKey: "jane@example.com"},
			expectWrites:  false,
			expectLookups: 2,
		},
		"name missing": {
			existing:      map[string]string{EmailKey: "jane@example.com"},
			expectWrites:  true,
			expectLookups: 1,
		},
		"email missing": {
			existing:      map[string]string{NameKey: "Jane"},
			expectWrites:  true,
			expectLookups: 2,
		},
		"email empty": {
			existing:      map[string]string{NameKey: "Jane", EmailKey: "  "},
			expectWrites:  true,
			expectLookups: 2,
		},
		"nothing configured": {
			existing:      map[string]string{},
			expectWrites:  true,
			expectLookups: 1,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			source := &mockSource{values: test.existing}
			sink := &mockSink{}
			c := NewConfigurator(source, sink, fallback, logger.NewNop())

			if err := c.Ensure(context.Background()); err != nil {
				t.Fatalf("Ensure returned error: %v", err)
			}

			if len(source.lookups) != test.expectLookups {
				t.Errorf("Expected %d lookups, got %d", test.expectLookups, len(source.lookups))
			}

			if !test.expectWrites {
				if len(sink.writes) != 0 {
					t.Errorf("Expected no writes, got %v", sink.writes)
				}
				return
			}

			if sink.writes[NameKey] != fallback.Name || sink.writes[EmailKey] != fallback.Email {
				t.Errorf("Expected both fallback values to be written, got %v", sink.writes)
			}
		})
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	source := &mockSource{values: map[string]string{}}
	sink := &mockSink{}
	c := NewConfigurator(source, sink, Identity{Name: "A", Email: "a@example.com"}, logger.NewNop())

	if err := c.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}

	// The fallback write makes the identity visible to later lookups
	source.values = sink.writes
	sink.writes = nil

	if err := c.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if len(sink.writes) != 0 {
		t.Errorf("Expected second Ensure to perform no writes, got %v", sink.writes)
	}
}

func TestEnsureReportsWriteFailure(t *testing.T) {
	writeErr := errors.New("could not lock config file")
	c := NewConfigurator(&mockSource{}, &mockSink{err: writeErr}, Identity{Name: "A", Email: "a@example.com"}, logger.NewNop())

	err := c.Ensure(context.Background())
	if !errors.Is(err, writeErr) {
		t.Errorf("Expected write failure to be returned, got %v", err)
	}
}

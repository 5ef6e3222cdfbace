package counter

import (
	"os"
	"path/filepath"
	"testing"

	cpErrors "github.com/bashhack/commitpulse/internal/errors"
)

func TestEnsureFileCreatesZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "number.txt")
	store := New(path)

	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile returned error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read counter file: %v", err)
	}
	if string(content) != "0" {
		t.Errorf("Expected new counter file to hold \"0\", got %q", content)
	}
}

func TestEnsureFileKeepsExistingValue(t *testing.T) {
	for _, v := range []int{0, 1, 42, 100000} {
		path := filepath.Join(t.TempDir(), "number.txt")
		store := New(path)

		if err := store.Write(v); err != nil {
			t.Fatalf("Write(%d) returned error: %v", v, err)
		}

		for i := 0; i < 3; i++ {
			if err := store.EnsureFile(); err != nil {
				t.Fatalf("EnsureFile returned error: %v", err)
			}
		}

		got, err := store.Read()
		if err != nil {
			t.Fatalf("Read returned error: %v", err)
		}
		if got != v {
			t.Errorf("Expected EnsureFile to leave %d in place, got %d", v, got)
		}
	}
}

func TestIncrement(t *testing.T) {
	for _, n := range []int{0, 1, 9, 99, 12345} {
		path := filepath.Join(t.TempDir(), "number.txt")
		store := New(path)
		if err := store.Write(n); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}

		got, err := store.Increment()
		if err != nil {
			t.Fatalf("Increment returned error: %v", err)
		}
		if got != n+1 {
			t.Errorf("Expected Increment to return %d, got %d", n+1, got)
		}

		persisted, err := store.Read()
		if err != nil {
			t.Fatalf("Read returned error: %v", err)
		}
		if persisted != n+1 {
			t.Errorf("Expected persisted value %d, got %d", n+1, persisted)
		}
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "number.txt"))

	for _, v := range []int{0, 7, 1 << 20} {
		if err := store.Write(v); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
		first, err := store.Read()
		if err != nil {
			t.Fatalf("Read returned error: %v", err)
		}
		if err := store.Write(first); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
		second, err := store.Read()
		if err != nil {
			t.Fatalf("Read returned error: %v", err)
		}
		if first != v || second != v {
			t.Errorf("Expected %d to round-trip, got %d then %d", v, first, second)
		}
	}
}

func TestReadToleratesSurroundingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "number.txt")
	if err := os.WriteFile(path, []byte(" 12\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	got, err := New(path).Read()
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got != 12 {
		t.Errorf("Expected 12, got %d", got)
	}
}

func TestReadFailures(t *testing.T) {
	tests := map[string]struct {
		content *string
	}{
		"missing file":  {content: nil},
		"not a number":  {content: ptr("twelve")},
		"empty file":    {content: ptr("")},
		"negative":      {content: ptr("-3")},
		"trailing junk": {content: ptr("12abc")},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "number.txt")
			if test.content != nil {
				if err := os.WriteFile(path, []byte(*test.content), 0644); err != nil {
					t.Fatalf("Failed to write file: %v", err)
				}
			}

			store := New(path)
			_, err := store.Read()
			if !cpErrors.Is(err, cpErrors.ErrCorruptCounter) {
				t.Fatalf("Expected ErrCorruptCounter, got %v", err)
			}

			var counterErr *cpErrors.CounterError
			if !cpErrors.As(err, &counterErr) {
				t.Fatalf("Expected CounterError, got %T", err)
			}

			if _, incErr := store.Increment(); incErr == nil {
				t.Error("Expected Increment to fail on an unreadable counter")
			}

			if test.content == nil {
				return
			}
			after, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to re-read file: %v", err)
			}
			if string(after) != *test.content {
				t.Errorf("Expected corrupt file to be left untouched, got %q", after)
			}
		})
	}
}

func TestWriteRejectsNegative(t *testing.T) {
	path := filepath.Join(t.TempDir(), "number.txt")
	store := New(path)
	if err := store.Write(-1); err == nil {
		t.Error("Expected Write(-1) to fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected rejected write not to create the file")
	}
}

func ptr(s string) *string { return &s }

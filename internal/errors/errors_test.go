package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/quitwise/internal/ledger"
	"github.com/julianstephens/quitwise/internal/validation"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{name: "wrapped error", err: fmt.Errorf("goal %q: %w", "g1", ledger.ErrNotFound), expected: `Error: goal "g1": not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("failed to load %s", "ledger"); got != "Error: failed to load ledger" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "generic", err: errors.New("boom"), want: ExitFailure},
		{name: "not found", err: fmt.Errorf("wrap: %w", ledger.ErrNotFound), want: ExitNotFound},
		{name: "invalid input", err: fmt.Errorf("wrap: %w", validation.ErrInvalidInput), want: ExitInvalid},
		{name: "invalid document", err: &validation.DocumentError{}, want: ExitInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// TestFatal runs Fatal in a subprocess and checks its exit code and stderr.
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(fmt.Errorf("achievement %q: %w", "nope", ledger.ErrNotFound))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != ExitNotFound {
		t.Errorf("Fatal() exit code = %d, want %d", exitErr.ExitCode(), ExitNotFound)
	}
	if !strings.Contains(stderr.String(), `Error: achievement "nope": not found`) {
		t.Errorf("Fatal() stderr = %q", stderr.String())
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_NilError$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("GO_TEST_FATALF") == "1" {
		Fatalf("cannot open %s", "quitwise.db")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatalf$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatalf() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != ExitFailure {
		t.Errorf("Fatalf() exit code = %d, want %d", exitErr.ExitCode(), ExitFailure)
	}
	if !strings.Contains(stderr.String(), "Error: cannot open quitwise.db") {
		t.Errorf("Fatalf() stderr = %q", stderr.String())
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/quitwise/internal/ledger"
	"github.com/julianstephens/quitwise/internal/logger"
	"github.com/julianstephens/quitwise/internal/validation"
)

// Exit codes returned by the CLI.
const (
	ExitFailure  = 1
	ExitInvalid  = 2
	ExitNotFound = 3
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// ExitCode maps ledger failures to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, validation.ErrInvalidDocument), stderrors.Is(err, validation.ErrInvalidInput):
		return ExitInvalid
	case stderrors.Is(err, ledger.ErrNotFound):
		return ExitNotFound
	default:
		return ExitFailure
	}
}

// Fatal logs an error and exits with the code ExitCode assigns to it.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(ExitFailure)
}

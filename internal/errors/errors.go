package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/waktu/internal/logger"
)

// ErrUnavailable marks a failed primary fetch (cities or schedule). The
// caller's state is left unchanged and the operation can be retried.
var ErrUnavailable = stderrors.New("service unavailable")

// Unavailable wraps err so that IsUnavailable reports true for it.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// IsUnavailable reports whether err came from a failed primary fetch.
func IsUnavailable(err error) bool {
	return stderrors.Is(err, ErrUnavailable)
}

// Format renders err with the "Error: " prefix and, for retryable fetch
// failures, a hint to try again.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if IsUnavailable(err) {
		return fmt.Sprintf("Error: %v (check your connection and try again)", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err, prints it to stderr and exits with status 1. Nil is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

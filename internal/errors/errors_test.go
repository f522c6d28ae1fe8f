package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "plain error",
			err:      stderrors.New("surah must be between 1 and 114"),
			expected: "Error: surah must be between 1 and 114",
		},
		{
			name:     "unavailable adds retry hint",
			err:      Unavailable("fetch schedule", stderrors.New("status 503")),
			expected: "Error: fetch schedule: service unavailable: status 503 (check your connection and try again)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUnavailable(t *testing.T) {
	cause := stderrors.New("dial tcp: timeout")
	err := Unavailable("fetch cities", cause)

	if !IsUnavailable(err) {
		t.Error("IsUnavailable() = false, want true")
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}
	if IsUnavailable(fmt.Errorf("outer: %w", err)) != true {
		t.Error("IsUnavailable() should see through further wrapping")
	}
	if Unavailable("noop", nil) != nil {
		t.Error("Unavailable(nil) should be nil")
	}
	if IsUnavailable(cause) {
		t.Error("plain error reported as unavailable")
	}
}

func TestFatal(t *testing.T) {
	if os.Getenv("WAKTU_TEST_FATAL") == "1" {
		Fatal(stderrors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "WAKTU_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: test error") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestFatalNil(t *testing.T) {
	if os.Getenv("WAKTU_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatalNil$")
	cmd.Env = append(os.Environ(), "WAKTU_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, got %v", err)
	}
}

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesRotatedFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Debug("dropped below warn")
	Warn("delivery failed", "tag", "prayer-maghrib-now")

	data, err := os.ReadFile(LogPath(configDir))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "delivery failed") {
		t.Errorf("log file missing warn entry: %q", got)
	}
	if strings.Contains(got, "dropped below warn") {
		t.Errorf("debug entry written at warn level: %q", got)
	}
}

func TestLogPath(t *testing.T) {
	got := LogPath("/tmp/waktu")
	want := filepath.Join("/tmp/waktu", "logs", "waktu.log")
	if got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
}

func TestFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")

	if l := With("scheduler"); l == nil {
		t.Error("With() returned nil without Init")
	}
}

func TestWithTagsComponent(t *testing.T) {
	configDir := t.TempDir()
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	With("mirror").Error("upsert failed")

	data, err := os.ReadFile(LogPath(configDir))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "component=mirror") {
		t.Errorf("log file missing component tag: %q", data)
	}
}

package settings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/session"
)

func TestView(t *testing.T) {
	m := New(models.DefaultSettings())
	s := models.DefaultSettings()
	s.NotifyOffsets = []int{15, 5}
	m.SetSnapshot(session.Snapshot{Settings: s, Permission: session.PermissionGranted, Pending: 12})

	view := m.View()
	for _, want := range []string{"15,5", "wib", "granted", "12"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewAtTimeOnly(t *testing.T) {
	s := models.DefaultSettings()
	s.NotifyOffsets = []int{}
	m := New(s)
	m.SetSnapshot(session.Snapshot{Settings: s})

	if !strings.Contains(m.View(), "at time only") {
		t.Errorf("expected at-time-only label, got:\n%s", m.View())
	}
}

func TestEditKey(t *testing.T) {
	m := New(models.DefaultSettings())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if cmd == nil {
		t.Fatal("expected edit command")
	}
	if _, ok := cmd().(EditSettingsMsg); !ok {
		t.Errorf("expected EditSettingsMsg, got %#v", cmd())
	}
}

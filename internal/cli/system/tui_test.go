package system

import (
	"context"
	"testing"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/notifier"
	"github.com/julianstephens/waktu/internal/session"
)

func TestTuiNotifier_ConsoleOnly(t *testing.T) {
	ctx, out := setupTestCtx(t)
	ctx.Config.NotifyVia = []string{constants.NotifyViaConsole}

	n, release := tuiNotifier(ctx)
	defer release()

	if n != nil {
		t.Fatalf("expected no notifier, got %T", n)
	}

	sess, err := ctx.NewSession(context.Background(), n)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	defer sess.Close()
	if got := sess.Permission(); got != session.PermissionUnsupported {
		t.Errorf("Permission() = %v, want unsupported", got)
	}
	if out.Len() != 0 {
		t.Errorf("expected nothing written to stdout, got %q", out.String())
	}
}

func TestTuiNotifier_DropsConsole(t *testing.T) {
	tests := []struct {
		name      string
		notifyVia []string
	}{
		{"default config", nil},
		{"tray only", []string{constants.NotifyViaTray}},
		{"console and tray", []string{constants.NotifyViaConsole, constants.NotifyViaTray}},
		{"tray and console", []string{constants.NotifyViaTray, constants.NotifyViaConsole}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestCtx(t)
			ctx.Config.NotifyVia = tt.notifyVia

			n, release := tuiNotifier(ctx)
			defer release()

			if _, ok := n.(*notifier.TrayNotifier); !ok {
				t.Fatalf("expected a tray notifier, got %T", n)
			}
		})
	}
}

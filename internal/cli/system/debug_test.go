package system

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/waktu/internal/models"
)

func TestDebugDBPathCmd(t *testing.T) {
	ctx, out := setupTestCtx(t)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug db-path command failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["path"] != ctx.Store.GetConfigPath() {
		t.Errorf("expected path %q, got %q", ctx.Store.GetConfigPath(), got["path"])
	}
}

func TestDebugDumpSettingsCmd(t *testing.T) {
	ctx, out := setupTestCtx(t)

	if err := (&DebugDumpSettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug dump-settings command failed: %v", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(out.Bytes(), &settings); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if settings.Language != "id" {
		t.Errorf("expected default language id, got %q", settings.Language)
	}
}

func TestDebugDumpScheduleCmd(t *testing.T) {
	ctx, out := setupTestCtx(t)

	if err := (&DebugDumpScheduleCmd{Date: "today"}).Run(ctx); err == nil {
		t.Error("expected error with no city selected")
	}

	if err := ctx.Store.SaveLastCity(jakarta); err != nil {
		t.Fatalf("failed to save city: %v", err)
	}
	if err := ctx.Store.SaveSchedule(jakarta, testSchedule("2025-03-10"), time.Now()); err != nil {
		t.Fatalf("failed to save schedule: %v", err)
	}

	out.Reset()
	if err := (&DebugDumpScheduleCmd{Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("dump-schedule failed: %v", err)
	}
	if !strings.Contains(out.String(), `"maghrib": "18:00"`) {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&DebugDumpScheduleCmd{Date: "2025-03-11"}).Run(ctx); err == nil {
		t.Error("expected error for uncached date")
	}
	if err := (&DebugDumpScheduleCmd{Date: "10/03/2025"}).Run(ctx); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestDebugDumpBookmarksCmd(t *testing.T) {
	ctx, out := setupTestCtx(t)

	if err := ctx.Store.AddBookmark(models.VerseBookmark(2, 255)); err != nil {
		t.Fatalf("failed to add bookmark: %v", err)
	}
	if err := (&DebugDumpBookmarksCmd{}).Run(ctx); err != nil {
		t.Fatalf("dump-bookmarks failed: %v", err)
	}

	var got struct {
		Bookmarks []models.Bookmark      `json:"bookmarks"`
		Recent    []models.RecentReading `json:"recent"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got.Bookmarks) != 1 || got.Bookmarks[0].Key() != "2:255" {
		t.Errorf("unexpected bookmarks: %+v", got.Bookmarks)
	}
}

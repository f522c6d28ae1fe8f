package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/storage"
	"github.com/julianstephens/waktu/internal/utils"
)

type DebugCmd struct {
	DBPath        *DebugDBPathCmd        `cmd:"" help:"Show database path."`
	DumpSettings  *DebugDumpSettingsCmd  `cmd:"" help:"Dump settings data as JSON."`
	DumpSchedule  *DebugDumpScheduleCmd  `cmd:"" help:"Dump a cached schedule as JSON."`
	DumpCities    *DebugDumpCitiesCmd    `cmd:"" help:"Dump the city cache as JSON."`
	DumpBookmarks *DebugDumpBookmarksCmd `cmd:"" help:"Dump bookmarks and recent readings as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings)
}

type DebugDumpScheduleCmd struct {
	Date string `arg:"" optional:"" help:"Date of the schedule to dump (YYYY-MM-DD or 'today')." default:"today"`
	City string `help:"City ID. Defaults to the last selected city."`
}

func (cmd *DebugDumpScheduleCmd) Run(ctx *cli.Context) error {
	cityID := cmd.City
	if cityID == "" {
		city, err := ctx.Store.GetLastCity()
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no city selected; pass --city")
		}
		if err != nil {
			return fmt.Errorf("failed to get last city: %w", err)
		}
		cityID = city.ID
	}

	date := cmd.Date
	if date == "" || date == "today" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		loc, err := utils.LoadLocation(settings.Timezone)
		if err != nil {
			return err
		}
		date = ctx.Now().In(loc).Format("2006-01-02")
	}
	if !isValidDate(date) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", date)
	}

	sched, err := ctx.Store.GetSchedule(cityID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no cached schedule for city %s on %s", cityID, date)
	}
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	return printJSON(ctx, sched)
}

type DebugDumpCitiesCmd struct{}

func (cmd *DebugDumpCitiesCmd) Run(ctx *cli.Context) error {
	cities, at, err := ctx.Store.GetCachedCities()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to get cached cities: %w", err)
	}
	out := map[string]interface{}{
		"count":  len(cities),
		"cities": cities,
	}
	if !at.IsZero() {
		out["cached_at"] = at
	}
	return printJSON(ctx, out)
}

type DebugDumpBookmarksCmd struct{}

func (cmd *DebugDumpBookmarksCmd) Run(ctx *cli.Context) error {
	bookmarks, err := ctx.Store.GetBookmarks()
	if err != nil {
		return fmt.Errorf("failed to get bookmarks: %w", err)
	}
	recent, err := ctx.Store.GetRecentReadings()
	if err != nil {
		return fmt.Errorf("failed to get recent readings: %w", err)
	}
	return printJSON(ctx, map[string]interface{}{
		"bookmarks": bookmarks,
		"recent":    recent,
	})
}

func printJSON(ctx *cli.Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

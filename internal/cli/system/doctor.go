package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/keyring"
	"github.com/julianstephens/waktu/internal/storage"
	"github.com/julianstephens/waktu/internal/utils"
)

type DoctorCmd struct{}

type diagnostics struct {
	ctx      *cli.Context
	hasError bool
}

func (d *diagnostics) check(name string, err error) {
	if err != nil {
		d.ctx.Printf("❌ %s: FAIL\n", name)
		d.ctx.Printf("   Error: %v\n", err)
		d.hasError = true
		return
	}
	d.ctx.Printf("✓ %s: OK\n", name)
}

func (d *diagnostics) warn(name string, err error) {
	if err != nil {
		d.ctx.Printf("⚠ %s: WARNING\n", name)
		d.ctx.Printf("   %v\n", err)
		return
	}
	d.ctx.Printf("✓ %s: OK\n", name)
}

func (d *diagnostics) skip(name, reason string) {
	d.ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	d := &diagnostics{ctx: ctx}

	dbErr := checkDBReachable(ctx)
	d.check("Database reachable", dbErr)
	if dbErr == nil {
		d.check("Schema version", checkSchemaVersion(ctx))
		d.check("Settings valid", checkSettings(ctx))
		d.warn("Selected city", checkSelectedCity(ctx))
	} else {
		for _, name := range []string{"Schema version", "Settings valid", "Selected city"} {
			d.skip(name, "database not reachable")
		}
	}

	d.check("Configuration", ctx.Config.Validate())
	d.check("Clock/timezone", checkClockTimezone(ctx))
	d.warn("OS keyring", checkKeyring())

	if ctx.Config.MirrorBackend == "" || ctx.Config.MirrorBackend == constants.MirrorBackendNone {
		d.skip("Schedule mirror", "no mirror configured")
	} else {
		d.check("Schedule mirror", checkMirror(ctx))
	}

	d.warn("Notification delivery", checkNotifier(ctx))

	ctx.Println()
	if d.hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetValue("doctor-probe"); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}

	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", current, latest, constants.AppName)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Validate()
}

func checkSelectedCity(ctx *cli.Context) error {
	city, err := ctx.Store.GetLastCity()
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no city selected yet - use '%s cities select'", constants.AppName)
	}
	if err != nil {
		return err
	}
	if city.ID == "" {
		return fmt.Errorf("selected city has no id")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		// Already reported by the settings check.
		return nil
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return err
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; secrets must come from the environment")
	}
	return nil
}

func checkMirror(ctx *cli.Context) error {
	c, cancel := context.WithTimeout(context.Background(), constants.MirrorWriteTimeout)
	defer cancel()

	m, err := ctx.OpenMirror(c)
	if err != nil {
		return err
	}
	return m.Ping(c)
}

func checkNotifier(ctx *cli.Context) error {
	n, release, err := ctx.BuildNotifier(nil)
	if err != nil {
		return err
	}
	defer release()

	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return n.Available(c)
}

package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/scheduler"
	"github.com/julianstephens/waktu/internal/session"
)

// scheduleRetention is how many days of cached schedules the daemon keeps.
const scheduleRetention = 30

type NotifyCmd struct {
	DryRun bool     `help:"Print notifications to stdout instead of sending them."`
	Once   bool     `help:"Schedule today's notifications, list them and exit."`
	Via    []string `help:"Delivery surfaces (tray, console, mqtt). Defaults to WAKTU_NOTIFY_VIA."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		ctx.Println("Notifications are disabled in settings.")
		return nil
	}

	surfaces := c.Via
	if c.DryRun {
		surfaces = []string{constants.NotifyViaConsole}
	}
	n, release, err := ctx.BuildNotifier(surfaces)
	if err != nil {
		return err
	}
	defer release()

	bg, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := ctx.NewSession(bg, n)
	if err != nil {
		return err
	}
	defer sess.Close()

	ok, err := sess.Restore(bg)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no city selected; run '%s cities select <id|name>' first", constants.AppName)
	}

	if p := sess.Permission(); p != session.PermissionGranted {
		return fmt.Errorf("notifications %s: check '%s doctor'", p, constants.AppName)
	}
	printPending(ctx, sess)

	if c.Once {
		return nil
	}

	log := logger.With("notify")
	daily, err := scheduler.NewDaily(sess.Location(), constants.DailyRefreshTime, func() {
		refreshDay(bg, ctx, sess)
	})
	if err != nil {
		return err
	}
	daily.Start()
	defer daily.Stop()

	log.Info("notify daemon started", "pending", len(sess.Pending()), "next_refresh", daily.NextRun())
	ctx.Printf("Waiting for prayer times (next refresh %s). Press Ctrl+C to stop.\n", daily.NextRun().Format("2006-01-02 15:04"))

	<-bg.Done()
	log.Info("notify daemon stopping")
	return nil
}

// refreshDay refetches the schedule for the new day and prunes old cached
// schedules.
func refreshDay(bg context.Context, ctx *cli.Context, sess *session.Session) {
	log := logger.With("notify")
	if err := sess.Refresh(bg); err != nil {
		log.Warn("daily refresh failed", "error", err)
		return
	}
	cutoff := sess.Now().AddDate(0, 0, -scheduleRetention).Format(constants.DateFormat)
	if n, err := ctx.Store.PruneSchedules(cutoff); err != nil {
		log.Warn("failed to prune cached schedules", "error", err)
	} else if n > 0 {
		log.Debug("pruned cached schedules", "count", n, "before", cutoff)
	}
	log.Info("schedule refreshed", "pending", len(sess.Pending()))
}

func printPending(ctx *cli.Context, sess *session.Session) {
	city, _ := sess.City()
	pending := sess.Pending()
	if len(pending) == 0 {
		ctx.Printf("No notifications left today for %s.\n", city.Name)
		return
	}
	ctx.Printf("Scheduled %d notification(s) for %s:\n", len(pending), city.Name)
	loc := sess.Location()
	for _, t := range pending {
		ctx.Printf("  %s  %-24s %s\n", t.FireAt.In(loc).Format(constants.TimeFormat), t.Tag, t.Notification.Title)
	}
}

package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/waktu/internal/clock"
	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/cli/prayers"
	"github.com/julianstephens/waktu/internal/cli/quran"
	"github.com/julianstephens/waktu/internal/cli/settings"
	"github.com/julianstephens/waktu/internal/cli/system"
	"github.com/julianstephens/waktu/internal/config"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/errors"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to the local SQLite database." type:"path" default:"~/.config/waktu/waktu.db"`
	Debug   bool   `help:"Log at debug level and mirror logs to stderr."`

	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Init     system.InitCmd       `cmd:"" help:"Initialize waktu storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd system.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage secrets in the OS keyring."`
	Notify   system.NotifyCmd     `cmd:"" help:"Run the prayer notification daemon."`
	Today    prayers.TodayCmd     `cmd:"" help:"Show today's prayer schedule."`
	Next     prayers.NextCmd      `cmd:"" help:"Show the next prayer and countdown."`
	Cities   prayers.CitiesCmd    `cmd:"" help:"Search, select and refresh cities."`
	Dua      prayers.DuaCmd       `cmd:"" help:"Show a random dua."`
	History  prayers.HistoryCmd   `cmd:"" help:"Show schedules kept in the remote mirror."`
	Quran    quran.QuranCmd       `cmd:"" help:"Browse the Quran."`
	Bookmark quran.BookmarkCmd    `cmd:"" help:"Manage surah and verse bookmarks."`
	Recent   quran.RecentCmd      `cmd:"" help:"List recently read surahs."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Prayer times, notifications and Quran reading in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	command := ctx.Command()
	configDir := filepath.Dir(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Stderr:    strings.HasPrefix(command, "notify"),
	}); err != nil {
		errors.Fatal(err)
	}

	cfg, err := config.Load(config.DotenvPaths(configDir)...)
	if err != nil {
		errors.Fatal(err)
	}

	store := sqlite.NewStore(CLI.Config)
	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
		Clock:  clock.Real{},
	}

	// init and migrate open the database themselves.
	if !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "migrate") {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	errors.Fatal(ctx.Run(appCtx))
}

package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/notifier"
	"github.com/julianstephens/waktu/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	n, release := tuiNotifier(ctx)
	defer release()

	sess, err := ctx.NewSession(context.Background(), n)
	if err != nil {
		return err
	}
	defer sess.Close()

	p := tea.NewProgram(tui.NewModel(sess, ctx.Library(), ctx.Quran()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// tuiNotifier builds the configured surfaces minus console, whose output
// would draw over the alt screen. When console is the only configured
// surface the TUI runs without a notifier.
func tuiNotifier(ctx *cli.Context) (notifier.Notifier, func()) {
	var surfaces []string
	for _, s := range ctx.Config.NotifyVia {
		if s != constants.NotifyViaConsole {
			surfaces = append(surfaces, s)
		}
	}
	if len(surfaces) == 0 && len(ctx.Config.NotifyVia) > 0 {
		return nil, func() {}
	}

	n, release, err := ctx.BuildNotifier(surfaces)
	if err != nil {
		logger.Warn("notifications unavailable", "error", err)
		return nil, func() {}
	}
	return n, release
}

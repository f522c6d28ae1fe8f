package prayers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/utils"
)

var errNoCity = fmt.Errorf("no city selected (run '%s cities select <name>' first)", constants.AppName)

// openSession starts a session on ref, or on the last selected city when
// ref is empty.
func openSession(ctx *cli.Context, ref string) (*session.Session, error) {
	bg := context.Background()
	sess, err := ctx.NewSession(bg, nil)
	if err != nil {
		return nil, err
	}

	if ref != "" {
		cities, err := sess.LoadCities(bg)
		if err != nil {
			sess.Close()
			return nil, err
		}
		city, err := session.FindCity(cities, ref)
		if err != nil {
			sess.Close()
			return nil, err
		}
		if _, err := sess.SelectCity(bg, city); err != nil {
			sess.Close()
			return nil, err
		}
		return sess, nil
	}

	ok, err := sess.Restore(bg)
	if err != nil {
		sess.Close()
		return nil, err
	}
	if !ok {
		sess.Close()
		return nil, errNoCity
	}
	return sess, nil
}

type TodayCmd struct {
	City string `help:"City id or name. Defaults to the last selected city." short:"c"`
	JSON bool   `help:"Print the schedule as JSON."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	sess, err := openSession(ctx, c.City)
	if err != nil {
		return err
	}
	defer sess.Close()

	state := sess.State()
	if state.City == nil {
		return errNoCity
	}

	if c.JSON {
		out := struct {
			City     models.City           `json:"city"`
			Timezone string                `json:"timezone"`
			Schedule models.PrayerSchedule `json:"schedule"`
			Next     *models.NextPrayer    `json:"next,omitempty"`
		}{City: *state.City, Timezone: state.Settings.Timezone, Schedule: state.Schedule}
		if state.HasNext {
			out.Next = &state.Next
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schedule: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	printSchedule(ctx.Stdout(), *state.City, state.Schedule, utils.ZoneLabel(state.Settings.Timezone), state.Next, state.HasNext)
	if state.HasNext {
		ctx.Println()
		printNext(ctx.Stdout(), state.Next, state.Countdown)
	}
	return nil
}

type NextCmd struct {
	City string `help:"City id or name. Defaults to the last selected city." short:"c"`
}

func (c *NextCmd) Run(ctx *cli.Context) error {
	sess, err := openSession(ctx, c.City)
	if err != nil {
		return err
	}
	defer sess.Close()

	state := sess.State()
	if !state.HasNext {
		return errors.New("the schedule has no prayer times")
	}
	ctx.Printf("%s (%s)\n", state.City.Name, utils.ZoneLabel(state.Settings.Timezone))
	printNext(ctx.Stdout(), state.Next, state.Countdown)
	return nil
}

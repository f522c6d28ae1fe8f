package prayers

import (
	"context"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/utils"
)

type CitiesCmd struct {
	Search  CitySearchCmd  `cmd:"" help:"Search cities by name." default:"withargs"`
	Select  CitySelectCmd  `cmd:"" help:"Select a city and fetch today's schedule."`
	Refresh CityRefreshCmd `cmd:"" help:"Refetch the city list, ignoring the cache."`
}

type CitySearchCmd struct {
	Query string `arg:"" help:"Part of the city name."`
}

func (c *CitySearchCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.NewSession(context.Background(), nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	cities, err := sess.LoadCities(context.Background())
	if err != nil {
		return err
	}

	matches := session.SearchCities(cities, c.Query)
	if len(matches) == 0 {
		ctx.Printf("No cities match %q.\n", c.Query)
		return nil
	}
	for _, city := range matches {
		ctx.Printf("%-6s %s\n", city.ID, city.Name)
	}
	return nil
}

type CitySelectCmd struct {
	City string `arg:"" help:"City id or name."`
}

func (c *CitySelectCmd) Run(ctx *cli.Context) error {
	sess, err := openSession(ctx, c.City)
	if err != nil {
		return err
	}
	defer sess.Close()

	state := sess.State()
	ctx.Printf("✓ Selected %s (%s)\n\n", state.City.Name, state.City.ID)
	printSchedule(ctx.Stdout(), *state.City, state.Schedule, utils.ZoneLabel(state.Settings.Timezone), state.Next, state.HasNext)
	return nil
}

type CityRefreshCmd struct{}

func (c *CityRefreshCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.NewSession(context.Background(), nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	cities, err := sess.RefreshCities(context.Background())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Cached %d cities\n", len(cities))
	return nil
}

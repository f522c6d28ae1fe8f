package prayers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/waktu/internal/cli"
)

type DuaCmd struct {
	Raw bool `help:"Print the provider response as-is."`
}

func (c *DuaCmd) Run(ctx *cli.Context) error {
	dua, raw, err := ctx.ScheduleProvider().RandomDua(context.Background())
	if c.Raw && len(raw) > 0 {
		var buf bytes.Buffer
		if json.Indent(&buf, raw, "", "  ") == nil {
			ctx.Println(buf.String())
		} else {
			ctx.Println(string(raw))
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("no dua available: %w", err)
	}

	ctx.Printf("📖 %s\n\n", dua.Title)
	ctx.Printf("%s\n\n", dua.Arabic)
	ctx.Printf("%s\n", dua.Translation)
	if dua.Source != "" {
		ctx.Printf("\nSource: %s\n", dua.Source)
	}
	return nil
}

type HistoryCmd struct {
	Limit int `help:"Number of days to show." default:"7"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.NewSession(context.Background(), nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	records, err := sess.History(context.Background(), c.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ctx.Println("No mirrored schedules. Set WAKTU_MIRROR to postgres or redis to keep a history.")
		return nil
	}

	ctx.Printf("%-10s  %-5s  %-5s  %-5s  %-5s  %-7s  %-5s\n", "Date", "Imsak", "Subuh", "Dzuhr", "Ashar", "Maghrib", "Isya")
	for _, r := range records {
		ctx.Printf("%-10s  %-5s  %-5s  %-5s  %-5s  %-7s  %-5s\n", r.Date, r.Imsak, r.Subuh, r.Dzuhur, r.Ashar, r.Maghrib, r.Isya)
	}
	return nil
}

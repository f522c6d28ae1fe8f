package settings

import (
	"fmt"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled *bool   `help:"Enable or disable prayer notifications."`
	Offsets              *string `help:"Minutes before each prayer to notify, comma separated (e.g. 5,15). Empty for at-time only."`
	Theme                *string `help:"Theme: system, light or dark."`
	Language             *string `help:"Language: id or en."`
	Timezone             *string `help:"Timezone: wib, wita or wit."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Theme:                 %s\n", settings.Theme)
		ctx.Printf("  Language:              %s\n", settings.Language)
		ctx.Printf("  Timezone:              %s\n", settings.Timezone)
		ctx.Println("\nNotification Settings:")
		ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		offsets := models.FormatOffsets(settings.NotifyOffsets)
		if offsets == "" {
			offsets = "at time only"
		} else {
			offsets += " min"
		}
		ctx.Printf("  Offsets:               %s\n", offsets)
		return nil
	}

	updated := false
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.Offsets != nil {
		offsets, err := models.ParseOffsets(*c.Offsets)
		if err != nil {
			return err
		}
		settings.NotifyOffsets = offsets
		updated = true
	}
	if c.Theme != nil {
		settings.Theme = *c.Theme
		updated = true
	}
	if c.Language != nil {
		settings.Language = *c.Language
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	ctx.Println("Current Settings:")
	ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
	ctx.Printf("  Timezone:              %s\n", settings.Timezone)
	ctx.Printf("  Default Window:        %d days\n", settings.DefaultWindowDays)
	ctx.Printf("  Bucket Window:         %s\n", settings.BucketWindow)
	ctx.Printf("\nSupport Quotes (%d):\n", len(settings.SupportQuotes))
	for i, q := range settings.SupportQuotes {
		ctx.Printf("  %d. %s\n", i+1, q)
	}
	return nil
}

type SetCmd struct {
	Notifications *bool    `help:"Enable or disable supportive notifications."`
	Timezone      *string  `help:"IANA timezone name, or Local for the system timezone."`
	Window        *int     `help:"Default number of days shown by stats."`
	BucketWindow  *string  `help:"Start bound for rating totals: inclusive or exclusive."`
	Quote         []string `sep:"none" help:"Replace the support quotes. Repeat for several quotes."`
	ResetQuotes   bool     `help:"Restore the built-in support quotes."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	updated := false
	if c.Notifications != nil {
		settings.NotificationsEnabled = *c.Notifications
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = strings.TrimSpace(*c.Timezone)
		updated = true
	}
	if c.Window != nil {
		settings.DefaultWindowDays = *c.Window
		updated = true
	}
	if c.BucketWindow != nil {
		start, err := models.ParseWindowStart(*c.BucketWindow)
		if err != nil {
			return err
		}
		settings.BucketWindow = start
		updated = true
	}
	if len(c.Quote) > 0 {
		settings.SupportQuotes = append([]string(nil), c.Quote...)
		updated = true
	}
	if c.ResetQuotes {
		settings.SupportQuotes = append([]string(nil), constants.DefaultSupportQuotes...)
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use 'moodlit settings show' to view settings or flags to update them.")
		return nil
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

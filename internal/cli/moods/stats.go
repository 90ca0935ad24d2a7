package moods

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/render"
	"github.com/julianstephens/moodlit/internal/stats"
)

type StatsCmd struct {
	Window int    `short:"w" help:"Number of days to chart. Defaults to the stored setting."`
	Ref    string `help:"Last day of the window (YYYY-MM-DD). Defaults to today."`
	Bucket string `help:"Whether the day before the window counts towards the rating totals: inclusive or exclusive."`
	Input  string `type:"existingfile" help:"Read entries from a mood_data/date_data JSON file instead of the journal."`
	JSON   bool   `help:"Print the summary as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	loc, err := settings.Location()
	if err != nil {
		return err
	}

	days := settings.DefaultWindowDays
	if c.Window != 0 {
		days = c.Window
	}
	if err := stats.CheckRequestedWindow(days); err != nil {
		return err
	}

	ref := models.Today(loc)
	if c.Ref != "" {
		if ref, err = models.ParseDate(c.Ref); err != nil {
			return err
		}
	}

	bucket := settings.BucketWindow
	if c.Bucket != "" {
		if bucket, err = models.ParseWindowStart(c.Bucket); err != nil {
			return err
		}
	}

	entries, err := c.entries(ctx)
	if err != nil {
		return err
	}

	summary := stats.Summarize(entries, ref, days, bucket)
	if c.JSON {
		enc := json.NewEncoder(ctx.Stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	ctx.Println(render.Summary(summary))
	return nil
}

func (c *StatsCmd) entries(ctx *cli.Context) ([]models.MoodEntry, error) {
	if c.Input == "" {
		j, err := ctx.Journal()
		if err != nil {
			return nil, err
		}
		return j.Snapshot(), nil
	}

	data, err := os.ReadFile(c.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Input, err)
	}
	var ps stats.ParallelSeries
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", c.Input, err)
	}
	return ps.Entries()
}

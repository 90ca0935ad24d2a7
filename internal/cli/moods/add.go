package moods

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/journal"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/notifier"
	"github.com/julianstephens/moodlit/internal/render"
	"github.com/julianstephens/moodlit/internal/tui"
)

type AddCmd struct {
	Comment      string `arg:"" optional:"" help:"What happened today."`
	Mood         string `short:"m" help:"How you feel: bad, normal or good."`
	Date         string `short:"d" help:"Day of the entry (YYYY-MM-DD). Defaults to today."`
	Interactive  bool   `short:"i" help:"Fill in the entry with a form."`
	DryRunNotify bool   `help:"Print the supportive message instead of sending it."`
}

// runForm is replaced in tests.
var runForm = func(f *tui.AddFormModel) error {
	return tui.NewAddForm(f).Run()
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	loc, err := settings.Location()
	if err != nil {
		return err
	}

	form := tui.AddFormModel{Comment: c.Comment, Date: c.Date}
	if c.Mood != "" {
		mood, err := models.ParseMood(c.Mood)
		if err != nil {
			return err
		}
		form.Mood = mood
	}
	if c.Interactive {
		if form.Date == "" {
			form.Date = models.Today(loc).String()
		}
		if form.Mood == 0 {
			form.Mood = models.MoodNormal
		}
		if err := runForm(&form); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	if strings.TrimSpace(form.Comment) == "" {
		return errors.New("comment is required")
	}
	if !form.Mood.Valid() {
		return errors.New("mood is required (--mood bad|normal|good)")
	}
	date := models.Today(loc)
	if strings.TrimSpace(form.Date) != "" {
		if date, err = models.ParseDate(strings.TrimSpace(form.Date)); err != nil {
			return err
		}
	}

	var opts []journal.Option
	if c.DryRunNotify {
		opts = append(opts, journal.WithNotifier(notifier.NewConsole(ctx.Stdout())))
	}
	j, err := ctx.Journal(opts...)
	if err != nil {
		return err
	}

	entry := j.Add(form.Comment, date, form.Mood)
	if err := ctx.PersistErr(); err != nil {
		return err
	}
	ctx.Printf("✓ Recorded %s\n", render.EntryLine(entry))
	return nil
}

package moods

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/stats"
)

type ExportCmd struct {
	Format string `short:"f" enum:"json,arrays" default:"json" help:"json for full entries, arrays for the mood_data/date_data form."`
	Output string `short:"o" help:"Write to this file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}

	var payload interface{} = j.State()
	if c.Format == "arrays" {
		payload = stats.Encode(j.Snapshot())
	}

	var w io.Writer = ctx.Stdout()
	if c.Output != "" {
		if err := os.MkdirAll(filepath.Dir(c.Output), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if c.Output != "" {
		ctx.Printf("✓ Exported %d entries to %s\n", j.Len(), c.Output)
	}
	return nil
}

package moods

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/render"
)

type ListCmd struct {
	JSON bool `help:"Print entries as JSON."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}
	entries := j.Snapshot()

	if c.JSON {
		enc := json.NewEncoder(ctx.Stdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode entries: %w", err)
		}
		return nil
	}

	ctx.Println(render.Entries(entries))
	return nil
}

type DeleteCmd struct {
	ID int `arg:"" help:"Id of the entry to delete."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}
	if !j.Delete(c.ID) {
		ctx.Printf("No entry with id %d.\n", c.ID)
		return nil
	}
	if err := ctx.PersistErr(); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted entry #%d\n", c.ID)
	return nil
}

package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete the existing journal before initializing. SQLite journals are backed up first."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized moodlit storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	var path string
	switch ctx.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		path = ctx.Store.GetConfigPath()
	default:
		return errors.New("--force is only supported for file-based storage")
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing journal: %w", err)
	}

	if mgr := ctx.BackupManager(); mgr != nil {
		backupPath, err := mgr.Create()
		if err != nil {
			return fmt.Errorf("failed to back up existing journal: %w", err)
		}
		ctx.Printf("Backed up existing journal to: %s\n", backupPath)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing journal: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing journal: %w", err)
	}
	ctx.Printf("Deleted existing journal at: %s\n", path)
	return nil
}

package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

type versioned interface {
	SchemaVersions() (current, latest int, err error)
}

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*cli.Context) error
	warning bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStorage},
	{name: "Schema version", run: checkSchema},
	{name: "Settings valid", run: checkSettings},
	{name: "Journal consistent", run: checkJournal},
	{name: "Backups present", run: checkBackups, warning: true},
	{name: "Keyring available", run: checkKeyring, warning: true},
	{name: "Clock/timezone", run: checkClock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if !reachable && c.name != "Clock/timezone" && c.name != "Keyring available" {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
		}
	}

	ctx.Println()
	if path := logger.Path(); path != "" {
		ctx.Printf("Log file: %s\n", path)
	}
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorage(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	return nil
}

func checkSchema(ctx *cli.Context) error {
	v, ok := ctx.Store.(versioned)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersions()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Validate()
}

func checkJournal(ctx *cli.Context) error {
	snap, err := ctx.Store.LoadJournal()
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	return validateSnapshot(snap)
}

// validateSnapshot reports duplicate ids, invalid ratings and an id counter
// that would hand out an id already in use.
func validateSnapshot(snap models.Snapshot) error {
	seen := make(map[int]bool, len(snap.Entries))
	for _, e := range snap.Entries {
		if seen[e.ID] {
			return fmt.Errorf("duplicate entry id %d", e.ID)
		}
		seen[e.ID] = true
		if !e.Mood.Valid() {
			return fmt.Errorf("entry %d has invalid rating %d", e.ID, int(e.Mood))
		}
		if e.ID >= snap.NextID {
			return fmt.Errorf("entry %d is not below the next id %d", e.ID, snap.NextID)
		}
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return errors.New("backups are only managed for SQLite storage")
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'moodlit backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring is not available; use MOODLIT_DB_CONNECTION for PostgreSQL instead")
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

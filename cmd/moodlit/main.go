package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/cli/backups"
	"github.com/julianstephens/moodlit/internal/cli/moods"
	"github.com/julianstephens/moodlit/internal/cli/settings"
	"github.com/julianstephens/moodlit/internal/cli/system"
	"github.com/julianstephens/moodlit/internal/config"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/notifier"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, JSON path, PostgreSQL connection string, or 'keyring'. Credentials must NOT be embedded in PostgreSQL connection strings." type:"string" default:"~/.config/moodlit/moodlit.db" env:"MOODLIT_DB_CONNECTION"`
	Debug   bool   `help:"Log debug output to stderr." env:"MOODLIT_DEBUG"`

	Init   system.InitCmd   `cmd:"" help:"Initialize moodlit storage."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add    moods.AddCmd     `cmd:"" help:"Record a mood."`
	List   moods.ListCmd    `cmd:"" help:"List recorded moods."`
	Delete moods.DeleteCmd  `cmd:"" help:"Delete a mood entry."`
	Stats  moods.StatsCmd   `cmd:"" help:"Show daily averages and mood counts."`
	Export moods.ExportCmd  `cmd:"" help:"Export the journal."`
	Serve  system.ServeCmd  `cmd:"" help:"Serve the journal over HTTP."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`

	Settings struct {
		Show settings.ShowCmd `cmd:"" help:"Show current settings." default:"1"`
		Set  settings.SetCmd  `cmd:"" help:"Change settings."`
	} `cmd:"" help:"Manage application settings."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	config.LoadEnv()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal mood journal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	store, err := storage.Open(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(store)}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	appCtx := &cli.Context{
		Store:    store,
		Notifier: notifier.Fallback{notifier.NewTray(), notifier.NewConsole(os.Stderr)},
	}

	// Init loads (or creates) storage itself.
	if ctx.Command() != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}

// configDir keeps logs next to a local database file, or under
// ~/.config/moodlit for PostgreSQL.
func configDir(store storage.Provider) string {
	if _, ok := store.(*postgres.Store); !ok {
		return filepath.Dir(store.GetConfigPath())
	}
	path, err := storage.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return os.TempDir()
	}
	return path
}

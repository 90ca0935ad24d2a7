// Package cli holds the state shared by every moodlit command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/moodlit/internal/backup"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/journal"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/notifier"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

type Context struct {
	Store storage.Provider

	// Notifier receives supportive messages when notifications are enabled.
	// It is wrapped in a Dispatcher so the journal never waits on delivery.
	Notifier notifier.Notifier

	Out io.Writer
	In  io.Reader

	journal     *journal.Store
	settings    models.Settings
	syncer      *storage.Syncer
	dispatcher  *notifier.Dispatcher
	unsubscribe func()
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Settings loads the stored settings once per command.
func (c *Context) Settings() (models.Settings, error) {
	if c.journal != nil {
		return c.settings, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Journal restores the persisted journal and keeps it in sync with storage.
// Extra options are applied after the ones derived from settings.
func (c *Context) Journal(opts ...journal.Option) (*journal.Store, error) {
	if c.journal != nil {
		return c.journal, nil
	}

	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	snap, err := c.Store.LoadJournal()
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	base := []journal.Option{journal.WithQuotes(settings.SupportQuotes)}
	if settings.NotificationsEnabled && c.Notifier != nil {
		c.dispatcher = notifier.NewDispatcher(c.Notifier)
		base = append(base, journal.WithNotifier(c.dispatcher))
	}

	j := journal.New(append(base, opts...)...)
	j.Restore(snap)
	c.syncer = storage.NewSyncer(c.Store, j.State().Version)
	c.unsubscribe = j.Subscribe(c.syncer.Observe)

	c.journal = j
	c.settings = settings
	logger.Debug("Journal loaded", "entries", j.Len(), "next_id", snap.NextID)
	return j, nil
}

// Syncer is nil until Journal has been called.
func (c *Context) Syncer() *storage.Syncer {
	return c.syncer
}

// PersistErr reports a failed save from the most recent journal change.
func (c *Context) PersistErr() error {
	if c.syncer == nil {
		return nil
	}
	if err := c.syncer.Err(); err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}
	return nil
}

// Close flushes pending notifications and releases storage.
func (c *Context) Close() error {
	if c.dispatcher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), constants.NotifyShutdownTimeout)
		defer cancel()
		if err := c.dispatcher.Shutdown(ctx); err != nil {
			logger.Warn("Pending notifications were not delivered", "error", err)
		}
		c.dispatcher = nil
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.journal = nil
	c.syncer = nil
	return c.Store.Close()
}

// BackupManager returns nil for backends that are not a local SQLite file.
func (c *Context) BackupManager() *backup.Manager {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Package storage persists the journal and settings. Providers hold whole
// snapshots: the in-memory journal is authoritative and storage mirrors it.
package storage

import (
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

var ErrNotInitialized = sqlite.ErrNotInitialized

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Journal
	LoadJournal() (models.Snapshot, error)
	SaveJournal(models.Snapshot) error

	// Utils
	GetConfigPath() string
}

package storage

import (
	"sync"

	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// Syncer mirrors journal snapshots into a Provider. Register Observe with
// journal.Store.Subscribe after restoring the persisted state; snapshots that
// are not newer than the last saved one are skipped.
type Syncer struct {
	provider Provider

	mu       sync.Mutex
	lastSave uint64
	err      error
}

// NewSyncer treats version as already persisted, normally the version of the
// snapshot the journal was restored from.
func NewSyncer(provider Provider, version uint64) *Syncer {
	return &Syncer{provider: provider, lastSave: version}
}

func (s *Syncer) Observe(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Version <= s.lastSave {
		return
	}
	if err := s.provider.SaveJournal(snap); err != nil {
		logger.Error("Failed to persist journal", "version", snap.Version, "error", err)
		s.err = err
		return
	}
	s.lastSave = snap.Version
	s.err = nil
	logger.Debug("Journal persisted", "version", snap.Version, "entries", len(snap.Entries))
}

// Err returns the error from the most recent save attempt, if it failed.
func (s *Syncer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

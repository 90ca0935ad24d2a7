// Package journal holds the in-memory mood journal: the ordered entries, id
// assignment, and change notification for observers.
package journal

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// Observer receives every published snapshot.
type Observer func(models.Snapshot)

// Store owns the authoritative list of entries. Writers are serialised; reads
// return copies and never observe a half-applied mutation.
type Store struct {
	// writeMu serialises mutation and publication so observers see snapshots
	// in mutation order. mu guards the state itself.
	writeMu sync.Mutex
	mu      sync.RWMutex

	entries []models.MoodEntry
	nextID  int
	version uint64

	observers  map[int]Observer
	observerID int

	support supportConfig
}

func New(opts ...Option) *Store {
	s := &Store{
		nextID:    1,
		observers: make(map[int]Observer),
		support:   defaultSupportConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add records a new entry and returns it. The comment is trimmed; no other
// validation happens here. A bad mood also asks the notifier for support.
func (s *Store) Add(comment string, date models.Date, mood models.Mood) models.MoodEntry {
	entry := s.add(comment, date, mood)
	logger.Debug("Mood entry added", "id", entry.ID, "mood", entry.Mood, "date", entry.Date)

	if mood == models.MoodBad {
		s.requestSupport(entry)
	}
	return entry
}

func (s *Store) add(comment string, date models.Date, mood models.Mood) models.MoodEntry {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	entry := models.MoodEntry{
		ID:      s.nextID,
		Comment: strings.TrimSpace(comment),
		Mood:    mood,
		Date:    date,
	}
	s.nextID++
	s.entries = append(s.entries, entry)
	s.version++
	snap := s.stateLocked()
	s.mu.Unlock()

	s.publish(snap)
	return entry
}

// Delete removes the entry with the given id and reports whether one existed.
func (s *Store) Delete(id int) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	kept := make([]models.MoodEntry, 0, len(s.entries)-1)
	kept = append(kept, s.entries[:idx]...)
	kept = append(kept, s.entries[idx+1:]...)
	s.entries = kept
	s.version++
	snap := s.stateLocked()
	s.mu.Unlock()

	s.publish(snap)
	logger.Debug("Mood entry deleted", "id", id)
	return true
}

// Snapshot returns the live entries in insertion order.
func (s *Store) Snapshot() []models.MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

// State returns the entries together with the id counter and version.
func (s *Store) State() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Restore replaces the journal with a persisted snapshot. The id counter never
// moves backwards past an id present in the snapshot.
func (s *Store) Restore(snap models.Snapshot) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.entries = cloneEntries(snap.Entries)
	next := snap.NextID
	for _, e := range s.entries {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	if next < 1 {
		next = 1
	}
	s.nextID = next
	s.version = snap.Version
	state := s.stateLocked()
	s.mu.Unlock()

	s.publish(state)
}

// Subscribe registers fn and immediately delivers the current state to it.
// Observers run on the writer's goroutine and must not call Add, Delete or
// Restore. The returned function removes the observer.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.observerID++
	id := s.observerID
	s.observers[id] = fn
	state := s.stateLocked()
	s.mu.Unlock()

	deliver(id, fn, state)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) stateLocked() models.Snapshot {
	return models.Snapshot{
		Entries: cloneEntries(s.entries),
		NextID:  s.nextID,
		Version: s.version,
	}
}

// publish must be called with writeMu held and mu released.
func (s *Store) publish(snap models.Snapshot) {
	s.mu.RLock()
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	observers := make([]Observer, 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		observers = append(observers, s.observers[id])
	}
	s.mu.RUnlock()

	for i, fn := range observers {
		// observers may keep the slice, so each gets its own copy
		deliver(ids[i], fn, models.Snapshot{
			Entries: cloneEntries(snap.Entries),
			NextID:  snap.NextID,
			Version: snap.Version,
		})
	}
}

// deliver runs one observer. A panicking observer is logged and skipped so
// the remaining observers still run and the store stays usable.
func deliver(id int, fn Observer, snap models.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Journal observer panicked", "observer", id, "version", snap.Version, "panic", fmt.Sprint(r))
		}
	}()
	fn(snap)
}

func cloneEntries(entries []models.MoodEntry) []models.MoodEntry {
	out := make([]models.MoodEntry, len(entries))
	copy(out, entries)
	return out
}

package sqlite

import (
	"fmt"

	"github.com/julianstephens/moodlit/internal/models"
)

// LoadJournal reads the entries in their original insertion order together
// with the id counter.
func (s *Store) LoadJournal() (models.Snapshot, error) {
	rows, err := s.db.Query("SELECT id, comment, rating, day FROM mood_entries ORDER BY position")
	if err != nil {
		return models.Snapshot{}, err
	}
	defer rows.Close()

	snap := models.Snapshot{Entries: []models.MoodEntry{}}
	for rows.Next() {
		var e models.MoodEntry
		var rating int
		var day string
		if err := rows.Scan(&e.ID, &e.Comment, &rating, &day); err != nil {
			return models.Snapshot{}, err
		}
		e.Mood = models.Mood(rating)
		if !e.Mood.Valid() {
			return models.Snapshot{}, fmt.Errorf("entry %d has invalid rating %d", e.ID, rating)
		}
		if e.Date, err = models.ParseDate(day); err != nil {
			return models.Snapshot{}, fmt.Errorf("entry %d: %w", e.ID, err)
		}
		snap.Entries = append(snap.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, err
	}

	if err := s.db.QueryRow("SELECT next_id FROM journal_state WHERE id = 1").Scan(&snap.NextID); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read journal state: %w", err)
	}
	return snap, nil
}

// SaveJournal replaces the stored journal with snap in one transaction.
func (s *Store) SaveJournal(snap models.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM mood_entries"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO mood_entries (id, comment, rating, day, position) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range snap.Entries {
		if _, err := stmt.Exec(e.ID, e.Comment, e.Mood.Ordinal(), e.Date.String(), i); err != nil {
			return fmt.Errorf("failed to save entry %d: %w", e.ID, err)
		}
	}

	if _, err := tx.Exec("INSERT OR REPLACE INTO journal_state (id, next_id) VALUES (1, ?)", snap.NextID); err != nil {
		return fmt.Errorf("failed to save journal state: %w", err)
	}
	return tx.Commit()
}

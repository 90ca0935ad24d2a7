package stats

import (
	"fmt"

	"github.com/julianstephens/moodlit/internal/models"
)

// ParallelSeries is the two-array form used to hand entries to a chart: the
// i-th rating ordinal belongs to the i-th epoch day.
type ParallelSeries struct {
	Moods []int   `json:"mood_data"`
	Days  []int64 `json:"date_data"`
}

// Encode keeps the order of entries.
func Encode(entries []models.MoodEntry) ParallelSeries {
	ps := ParallelSeries{
		Moods: make([]int, 0, len(entries)),
		Days:  make([]int64, 0, len(entries)),
	}
	for _, e := range entries {
		ps.Moods = append(ps.Moods, e.Mood.Ordinal())
		ps.Days = append(ps.Days, e.Date.EpochDay())
	}
	return ps
}

// Entries rebuilds entries from the arrays. Ids are assigned 1..n and comments
// are empty since the arrays do not carry them.
func (ps ParallelSeries) Entries() ([]models.MoodEntry, error) {
	if len(ps.Moods) != len(ps.Days) {
		return nil, fmt.Errorf("mood_data has %d values but date_data has %d", len(ps.Moods), len(ps.Days))
	}

	entries := make([]models.MoodEntry, 0, len(ps.Moods))
	for i, ordinal := range ps.Moods {
		mood := models.Mood(ordinal)
		if !mood.Valid() {
			return nil, fmt.Errorf("mood_data[%d]: invalid rating %d", i, ordinal)
		}
		entries = append(entries, models.MoodEntry{
			ID:   i + 1,
			Mood: mood,
			Date: models.DateFromEpochDay(ps.Days[i]),
		})
	}
	return entries, nil
}

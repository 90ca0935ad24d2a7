package models

// MoodEntry is one journal record. Entries are never edited after creation.
type MoodEntry struct {
	ID      int    `json:"id"`
	Comment string `json:"comment"`
	Mood    Mood   `json:"mood"`
	Date    Date   `json:"date"`
}

// Snapshot is the journal state handed to observers and persistence.
type Snapshot struct {
	Entries []MoodEntry `json:"entries"`
	NextID  int         `json:"next_id"`
	Version uint64      `json:"-"`
}

// DailyAggregate is one point of a charted series. Average is 0 when the day
// has no entries; no real rating maps to 0.
type DailyAggregate struct {
	Date    Date    `json:"date"`
	Average float64 `json:"average"`
}

func (a DailyAggregate) HasData() bool {
	return a.Average != 0
}

// BucketCounts tallies entries per rating.
type BucketCounts struct {
	Bad    int `json:"bad"`
	Normal int `json:"normal"`
	Good   int `json:"good"`
}

func (c BucketCounts) Total() int {
	return c.Bad + c.Normal + c.Good
}

// Add increments the bucket for m. Invalid ratings are ignored.
func (c *BucketCounts) Add(m Mood) {
	switch m {
	case MoodBad:
		c.Bad++
	case MoodNormal:
		c.Normal++
	case MoodGood:
		c.Good++
	}
}

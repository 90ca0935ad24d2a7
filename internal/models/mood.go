package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Mood is the rating attached to a journal entry. The underlying value is the
// ordinal used for aggregation.
type Mood int

const (
	MoodBad    Mood = 1
	MoodNormal Mood = 2
	MoodGood   Mood = 3
)

// Moods lists every rating in ascending order.
var Moods = []Mood{MoodBad, MoodNormal, MoodGood}

func (m Mood) Ordinal() int {
	return int(m)
}

func (m Mood) Valid() bool {
	return m >= MoodBad && m <= MoodGood
}

func (m Mood) String() string {
	switch m {
	case MoodBad:
		return "bad"
	case MoodNormal:
		return "normal"
	case MoodGood:
		return "good"
	default:
		return fmt.Sprintf("mood(%d)", int(m))
	}
}

// Label returns the human-readable description shown next to an entry.
func (m Mood) Label() string {
	switch m {
	case MoodBad:
		return "Bad mood"
	case MoodNormal:
		return "Normal mood"
	case MoodGood:
		return "Good mood"
	default:
		return "Unknown mood"
	}
}

func (m Mood) Emoji() string {
	switch m {
	case MoodBad:
		return "🙁"
	case MoodNormal:
		return "😐"
	case MoodGood:
		return "😄"
	default:
		return "?"
	}
}

// ParseMood accepts a rating name or its ordinal, case-insensitively.
func ParseMood(s string) (Mood, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "bad":
		return MoodBad, nil
	case "normal", "ok":
		return MoodNormal, nil
	case "good":
		return MoodGood, nil
	}

	n, err := strconv.Atoi(v)
	if err == nil && Mood(n).Valid() {
		return Mood(n), nil
	}
	return 0, fmt.Errorf("invalid mood: %q (expected bad, normal or good)", s)
}

func (m Mood) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mood: %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mood) UnmarshalText(text []byte) error {
	parsed, err := ParseMood(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseMood(t *testing.T) {
	tests := []struct {
		input   string
		want    Mood
		wantErr bool
	}{
		{input: "bad", want: MoodBad},
		{input: " Normal ", want: MoodNormal},
		{input: "GOOD", want: MoodGood},
		{input: "ok", want: MoodNormal},
		{input: "1", want: MoodBad},
		{input: "3", want: MoodGood},
		{input: "0", wantErr: true},
		{input: "4", wantErr: true},
		{input: "", wantErr: true},
		{input: "great", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMood(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMood(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMood(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMood(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoodOrdering(t *testing.T) {
	if !(MoodBad.Ordinal() < MoodNormal.Ordinal() && MoodNormal.Ordinal() < MoodGood.Ordinal()) {
		t.Error("moods are not ordered bad < normal < good")
	}
	if MoodBad.Ordinal() != 1 || MoodGood.Ordinal() != 3 {
		t.Errorf("unexpected ordinals: bad=%d good=%d", MoodBad.Ordinal(), MoodGood.Ordinal())
	}
}

func TestMoodJSON(t *testing.T) {
	entry := MoodEntry{ID: 7, Comment: "rough day", Mood: MoodBad, Date: NewDate(2024, time.January, 3)}
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"id":7,"comment":"rough day","mood":"bad","date":"2024-01-03"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var back MoodEntry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != entry {
		t.Errorf("round trip mismatch: got %+v, want %+v", back, entry)
	}

	if err := json.Unmarshal([]byte(`{"mood":"meh"}`), &back); err == nil {
		t.Error("expected error for unknown mood")
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	if got := d.AddDays(-1); got != NewDate(2024, time.February, 29) {
		t.Errorf("leap day: got %s", got)
	}
	if got := NewDate(2023, time.December, 31).AddDays(1); got.String() != "2024-01-01" {
		t.Errorf("year rollover: got %s", got)
	}
	if got := NewDate(1970, time.January, 1).EpochDay(); got != 0 {
		t.Errorf("epoch day of 1970-01-01 = %d, want 0", got)
	}
	if got := NewDate(2024, time.January, 1).EpochDay(); got != 19723 {
		t.Errorf("epoch day of 2024-01-01 = %d, want 19723", got)
	}
	for _, day := range []int64{-400, -1, 0, 1, 19723, 20000} {
		if got := DateFromEpochDay(day).EpochDay(); got != day {
			t.Errorf("DateFromEpochDay(%d) round trip = %d", day, got)
		}
	}
}

func TestDateCompare(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.January, 2)
	if !a.Before(b) || a.After(b) || a.Equal(b) {
		t.Error("expected a < b")
	}
	if a.Compare(a) != 0 || b.Compare(a) != 1 {
		t.Error("unexpected Compare result")
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	instant := time.Date(2024, time.January, 1, 20, 0, 0, 0, time.UTC)
	if got := DateOf(instant.In(loc)); got.String() != "2024-01-02" {
		t.Errorf("DateOf in UTC+10 = %s, want 2024-01-02", got)
	}
	if got := DateOf(instant); got.String() != "2024-01-01" {
		t.Errorf("DateOf in UTC = %s, want 2024-01-01", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != NewDate(2024, time.February, 29) {
		t.Errorf("got %v", d)
	}
	for _, bad := range []string{"2023-02-29", "02/03/2024", "", "2024-1-1"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Timezone = "Europe/London"
	s.DefaultWindowDays = 30
	s.BucketWindow = WindowExclusive
	s.SupportQuotes = []string{"hang in there", "tomorrow, then"}
	s.NotificationsEnabled = false

	m, err := SettingsToMap(s)
	if err != nil {
		t.Fatalf("SettingsToMap failed: %v", err)
	}
	back, err := MapToSettings(m)
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if back.Timezone != s.Timezone || back.DefaultWindowDays != 30 || back.BucketWindow != WindowExclusive || back.NotificationsEnabled {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if len(back.SupportQuotes) != 2 || back.SupportQuotes[1] != "tomorrow, then" {
		t.Errorf("quotes mismatch: %v", back.SupportQuotes)
	}
}

func TestMapToSettingsDefaults(t *testing.T) {
	s, err := MapToSettings(map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	if _, err := MapToSettings(map[string]string{"default_window_days": "week"}); err == nil {
		t.Error("expected error for non-numeric window")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero window", func(s *Settings) { s.DefaultWindowDays = 0 }},
		{"no quotes", func(s *Settings) { s.SupportQuotes = nil }},
		{"blank quote", func(s *Settings) { s.SupportQuotes = []string{"ok", "  "} }},
		{"bad timezone", func(s *Settings) { s.Timezone = "Mars/Olympus" }},
		{"bad bucket window", func(s *Settings) { s.BucketWindow = "sometimes" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

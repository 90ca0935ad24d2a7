package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/moodlit/internal/models"
)

func d(day int) models.Date {
	return models.NewDate(2024, time.January, day)
}

func entry(id int, date models.Date, mood models.Mood) models.MoodEntry {
	return models.MoodEntry{ID: id, Date: date, Mood: mood}
}

func averages(series []models.DailyAggregate) []float64 {
	out := make([]float64, len(series))
	for i, p := range series {
		out[i] = p.Average
	}
	return out
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAggregateDaily(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.MoodEntry
		ref     models.Date
		days    int
		want    []float64
	}{
		{
			name: "one entry per day",
			entries: []models.MoodEntry{
				entry(1, d(1), models.MoodNormal),
				entry(2, d(2), models.MoodGood),
				entry(3, d(3), models.MoodBad),
			},
			ref:  d(3),
			days: 3,
			want: []float64{2.0, 3.0, 1.0},
		},
		{
			name: "mean of two entries on one day",
			entries: []models.MoodEntry{
				entry(1, d(5), models.MoodBad),
				entry(2, d(5), models.MoodGood),
			},
			ref:  d(5),
			days: 1,
			want: []float64{2.0},
		},
		{
			name: "fractional mean is not rounded",
			entries: []models.MoodEntry{
				entry(1, d(5), models.MoodBad),
				entry(2, d(5), models.MoodBad),
				entry(3, d(5), models.MoodGood),
			},
			ref:  d(5),
			days: 1,
			want: []float64{5.0 / 3.0},
		},
		{
			name:    "empty window is all zeros",
			entries: nil,
			ref:     d(10),
			days:    4,
			want:    []float64{0, 0, 0, 0},
		},
		{
			name: "gaps are filled with zero",
			entries: []models.MoodEntry{
				entry(1, d(2), models.MoodGood),
				entry(2, d(5), models.MoodNormal),
			},
			ref:  d(5),
			days: 5,
			want: []float64{0, 3.0, 0, 0, 2.0},
		},
		{
			name: "window start day is excluded",
			entries: []models.MoodEntry{
				entry(1, d(7), models.MoodGood),
				entry(2, d(8), models.MoodBad),
			},
			ref:  d(10),
			days: 3,
			want: []float64{1.0, 0, 0},
		},
		{
			name: "entries after the reference are not emitted",
			entries: []models.MoodEntry{
				entry(1, d(10), models.MoodNormal),
				entry(2, d(11), models.MoodGood),
			},
			ref:  d(10),
			days: 2,
			want: []float64{0, 2.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := AggregateDaily(tt.entries, tt.ref, tt.days)
			if len(series) != tt.days {
				t.Fatalf("len = %d, want %d", len(series), tt.days)
			}
			if got := averages(series); !equalFloats(got, tt.want) {
				t.Errorf("averages = %v, want %v", got, tt.want)
			}
			if !series[len(series)-1].Date.Equal(tt.ref) {
				t.Errorf("last point = %s, want %s", series[len(series)-1].Date, tt.ref)
			}
			for i := 1; i < len(series); i++ {
				if series[i].Date != series[i-1].Date.AddDays(1) {
					t.Errorf("point %d is %s, not the day after %s", i, series[i].Date, series[i-1].Date)
				}
			}
		})
	}
}

func TestAggregateDailyAcrossMonthBoundary(t *testing.T) {
	ref := models.NewDate(2024, time.March, 1)
	entries := []models.MoodEntry{entry(1, models.NewDate(2024, time.February, 29), models.MoodGood)}

	series := AggregateDaily(entries, ref, 2)
	if series[0].Date != models.NewDate(2024, time.February, 29) || series[0].Average != 3 {
		t.Errorf("unexpected first point %+v", series[0])
	}
	if series[1].HasData() {
		t.Errorf("expected no data on %s", series[1].Date)
	}
}

func TestAggregateDailyPanicsOnInvalidWindow(t *testing.T) {
	for _, days := range []int{0, -1} {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Errorf("AggregateDaily with %d days did not panic", days)
					return
				}
				if err, ok := r.(error); !ok || !errors.Is(err, ErrInvalidWindow) {
					t.Errorf("panic value = %v, want ErrInvalidWindow", r)
				}
			}()
			AggregateDaily(nil, d(1), days)
		}()
	}
}

func TestBucketCounts(t *testing.T) {
	entries := []models.MoodEntry{
		entry(1, d(6), models.MoodGood), // before the window
		entry(2, d(7), models.MoodBad),  // ref - days
		entry(3, d(8), models.MoodNormal),
		entry(4, d(10), models.MoodGood),
		entry(5, d(10), models.MoodGood),
		entry(6, d(11), models.MoodBad), // after ref
	}

	got := BucketCounts(entries, d(10), 3)
	want := models.BucketCounts{Bad: 1, Normal: 1, Good: 2}
	if got != want {
		t.Errorf("inclusive counts = %+v, want %+v", got, want)
	}

	got = BucketCountsIn(entries, Window{Reference: d(10), Days: 3, Start: StartExclusive})
	want = models.BucketCounts{Bad: 0, Normal: 1, Good: 2}
	if got != want {
		t.Errorf("exclusive counts = %+v, want %+v", got, want)
	}
}

func TestBucketCountsEmpty(t *testing.T) {
	if got := BucketCounts(nil, d(1), 7); got.Total() != 0 {
		t.Errorf("expected no counts, got %+v", got)
	}
}

func TestBucketCountsPanicsOnInvalidWindow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	BucketCounts(nil, d(1), 0)
}

func TestWindowBounds(t *testing.T) {
	tests := []struct {
		start    models.WindowStart
		wantFrom models.Date
	}{
		{StartInclusive, d(3)},
		{StartExclusive, d(4)},
	}
	for _, tt := range tests {
		t.Run(string(tt.start), func(t *testing.T) {
			w := Window{Reference: d(10), Days: 7, Start: tt.start}
			from, to := w.Bounds()
			if from != tt.wantFrom || to != d(10) {
				t.Errorf("bounds = [%s, %s], want [%s, %s]", from, to, tt.wantFrom, d(10))
			}
			if w.Contains(tt.wantFrom.AddDays(-1)) || !w.Contains(tt.wantFrom) || w.Contains(d(11)) {
				t.Error("Contains disagrees with Bounds")
			}
		})
	}
}

func TestValidateWindow(t *testing.T) {
	if err := ValidateWindow(1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateWindow(0); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("got %v, want ErrInvalidWindow", err)
	}
}

func TestCheckRequestedWindow(t *testing.T) {
	tests := []struct {
		days int
		want error
	}{
		{1, nil},
		{366, nil},
		{0, ErrInvalidWindow},
		{367, ErrWindowTooLarge},
		{1000000000, ErrWindowTooLarge},
	}
	for _, tt := range tests {
		err := CheckRequestedWindow(tt.days)
		if tt.want == nil && err != nil {
			t.Errorf("CheckRequestedWindow(%d) = %v", tt.days, err)
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("CheckRequestedWindow(%d) = %v, want %v", tt.days, err, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	entries := []models.MoodEntry{
		entry(1, d(1), models.MoodNormal),
		entry(2, d(2), models.MoodGood),
		entry(3, d(3), models.MoodBad),
	}

	s := Summarize(entries, d(3), 3, "")
	if !equalFloats(averages(s.Daily), []float64{2, 3, 1}) {
		t.Errorf("daily = %v", averages(s.Daily))
	}
	if s.Buckets != (models.BucketCounts{Bad: 1, Normal: 1, Good: 1}) {
		t.Errorf("buckets = %+v", s.Buckets)
	}
	if s.BucketWindow != StartInclusive {
		t.Errorf("bucket window defaulted to %q", s.BucketWindow)
	}
	if s.Mean != 2 || s.DaysWithData != 3 {
		t.Errorf("mean = %v over %d days", s.Mean, s.DaysWithData)
	}

	s = Summarize(entries, d(3), 2, StartExclusive)
	if s.Buckets.Total() != 2 || s.DaysWithData != 2 || s.Mean != 2 {
		t.Errorf("exclusive summary = %+v", s)
	}

	if s := Summarize(nil, d(3), 7, StartInclusive); s.Mean != 0 || s.DaysWithData != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestParallelSeries(t *testing.T) {
	entries := []models.MoodEntry{
		{ID: 4, Comment: "dropped", Mood: models.MoodGood, Date: models.NewDate(2024, time.January, 1)},
		{ID: 9, Mood: models.MoodBad, Date: models.NewDate(2024, time.January, 3)},
	}

	ps := Encode(entries)
	if len(ps.Moods) != 2 || ps.Moods[0] != 3 || ps.Moods[1] != 1 {
		t.Errorf("moods = %v", ps.Moods)
	}
	if ps.Days[0] != 19723 || ps.Days[1] != 19725 {
		t.Errorf("days = %v", ps.Days)
	}

	back, err := ps.Entries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back[0].ID != 1 || back[1].ID != 2 || back[0].Comment != "" {
		t.Errorf("decoded entries = %+v", back)
	}
	if back[1].Date != entries[1].Date || back[1].Mood != models.MoodBad {
		t.Errorf("decoded entries = %+v", back)
	}
}

func TestParallelSeriesErrors(t *testing.T) {
	tests := []struct {
		name string
		ps   ParallelSeries
	}{
		{"length mismatch", ParallelSeries{Moods: []int{1, 2}, Days: []int64{0}}},
		{"zero ordinal", ParallelSeries{Moods: []int{0}, Days: []int64{0}}},
		{"ordinal too large", ParallelSeries{Moods: []int{4}, Days: []int64{0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.ps.Entries(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

package stats

import (
	"github.com/julianstephens/moodlit/internal/models"
)

// Summary is everything the stats views show for one window. Mean averages
// only the days that have data and is 0 when none do.
type Summary struct {
	Reference    models.Date             `json:"reference"`
	WindowDays   int                     `json:"window_days"`
	BucketWindow models.WindowStart      `json:"bucket_window"`
	Daily        []models.DailyAggregate `json:"daily"`
	Buckets      models.BucketCounts     `json:"buckets"`
	Mean         float64                 `json:"mean"`
	DaysWithData int                     `json:"days_with_data"`
}

func Summarize(entries []models.MoodEntry, ref models.Date, windowDays int, bucketStart models.WindowStart) Summary {
	if bucketStart == "" {
		bucketStart = StartInclusive
	}

	daily := AggregateDaily(entries, ref, windowDays)
	s := Summary{
		Reference:    ref,
		WindowDays:   windowDays,
		BucketWindow: bucketStart,
		Daily:        daily,
		Buckets:      BucketCountsIn(entries, Window{Reference: ref, Days: windowDays, Start: bucketStart}),
	}

	var total float64
	for _, p := range daily {
		if !p.HasData() {
			continue
		}
		total += p.Average
		s.DaysWithData++
	}
	if s.DaysWithData > 0 {
		s.Mean = total / float64(s.DaysWithData)
	}
	return s
}

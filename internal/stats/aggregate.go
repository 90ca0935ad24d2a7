package stats

import (
	"github.com/julianstephens/moodlit/internal/models"
)

// AggregateDaily returns exactly windowDays points, one per day from
// ref-windowDays+1 through ref in ascending order. Each point holds the mean
// rating ordinal of that day's entries, or 0 when there are none. The window
// start ref-windowDays itself is excluded. It panics if windowDays <= 0.
func AggregateDaily(entries []models.MoodEntry, ref models.Date, windowDays int) []models.DailyAggregate {
	w := Window{Reference: ref, Days: windowDays, Start: StartExclusive}
	from, _ := w.Bounds()

	type acc struct {
		sum   int
		count int
	}
	byDay := make(map[int64]*acc)
	for _, e := range entries {
		if e.Date.Before(from) {
			continue
		}
		key := e.Date.EpochDay()
		a, ok := byDay[key]
		if !ok {
			a = &acc{}
			byDay[key] = a
		}
		a.sum += e.Mood.Ordinal()
		a.count++
	}

	series := make([]models.DailyAggregate, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		day := from.AddDays(i)
		point := models.DailyAggregate{Date: day}
		if a, ok := byDay[day.EpochDay()]; ok && a.count > 0 {
			point.Average = float64(a.sum) / float64(a.count)
		}
		series = append(series, point)
	}
	return series
}

// BucketCounts counts entries per rating over [ref-windowDays, ref], both ends
// included. It panics if windowDays <= 0.
func BucketCounts(entries []models.MoodEntry, ref models.Date, windowDays int) models.BucketCounts {
	return BucketCountsIn(entries, Window{Reference: ref, Days: windowDays, Start: StartInclusive})
}

// BucketCountsIn counts entries per rating inside w.
func BucketCountsIn(entries []models.MoodEntry, w Window) models.BucketCounts {
	from, to := w.Bounds()

	var counts models.BucketCounts
	for _, e := range entries {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		counts.Add(e.Mood)
	}
	return counts
}

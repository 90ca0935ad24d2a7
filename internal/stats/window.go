// Package stats turns journal entries into chart series and rating counts.
// Every function takes its reference day as a parameter and never reads the
// clock.
package stats

import (
	"errors"
	"fmt"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

var (
	ErrInvalidWindow  = errors.New("window must be at least one day")
	ErrWindowTooLarge = fmt.Errorf("window must be at most %d days", constants.MaxWindowDays)
)

const (
	// StartInclusive counts entries dated exactly Reference - Days.
	StartInclusive = models.WindowInclusive
	// StartExclusive drops them, leaving exactly Days calendar days.
	StartExclusive = models.WindowExclusive
)

// Window is a run of calendar days ending at Reference.
type Window struct {
	Reference models.Date
	Days      int
	Start     models.WindowStart
}

// ValidateWindow rejects window sizes the aggregation functions would panic on.
func ValidateWindow(days int) error {
	if days <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWindow, days)
	}
	return nil
}

// CheckRequestedWindow validates a window size supplied from outside the
// program, which must also stay within MaxWindowDays.
func CheckRequestedWindow(days int) error {
	if err := ValidateWindow(days); err != nil {
		return err
	}
	if days > constants.MaxWindowDays {
		return fmt.Errorf("%w: got %d", ErrWindowTooLarge, days)
	}
	return nil
}

// Bounds returns the first and last day the window covers, both inclusive.
func (w Window) Bounds() (from, to models.Date) {
	mustWindow(w.Days)
	from = w.Reference.AddDays(-w.Days)
	if w.Start == StartExclusive {
		from = from.AddDays(1)
	}
	return from, w.Reference
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d models.Date) bool {
	from, to := w.Bounds()
	return !d.Before(from) && !d.After(to)
}

func mustWindow(days int) {
	if err := ValidateWindow(days); err != nil {
		panic(err)
	}
}

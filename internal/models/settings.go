package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
)

// WindowStart selects whether the first day of a statistics window
// (reference - days) is counted.
type WindowStart string

const (
	WindowInclusive WindowStart = "inclusive"
	WindowExclusive WindowStart = "exclusive"
)

func ParseWindowStart(s string) (WindowStart, error) {
	switch WindowStart(strings.ToLower(strings.TrimSpace(s))) {
	case WindowInclusive:
		return WindowInclusive, nil
	case WindowExclusive:
		return WindowExclusive, nil
	default:
		return "", fmt.Errorf("invalid window start: %q (expected inclusive or exclusive)", s)
	}
}

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool        `json:"notifications_enabled"` // whether bad moods trigger a supportive notification
	Timezone             string      `json:"timezone"`              // IANA timezone name, or "Local" for system timezone
	DefaultWindowDays    int         `json:"default_window_days"`   // window used by stats views when none is given
	BucketWindow         WindowStart `json:"bucket_window"`         // start bound used for bucket counts
	SupportQuotes        []string    `json:"support_quotes"`        // messages picked from on a bad mood
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	quotes := make([]string, len(constants.DefaultSupportQuotes))
	copy(quotes, constants.DefaultSupportQuotes)
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		Timezone:             constants.DefaultTimezone,
		DefaultWindowDays:    constants.DefaultWindowDays,
		BucketWindow:         WindowStart(constants.DefaultBucketWindow),
		SupportQuotes:        quotes,
	}
}

func (s Settings) Validate() error {
	if s.DefaultWindowDays <= 0 {
		return fmt.Errorf("default window must be positive, got %d", s.DefaultWindowDays)
	}
	if s.DefaultWindowDays > constants.MaxWindowDays {
		return fmt.Errorf("default window must be at most %d days, got %d", constants.MaxWindowDays, s.DefaultWindowDays)
	}
	if _, err := ParseWindowStart(string(s.BucketWindow)); err != nil {
		return err
	}
	if len(s.SupportQuotes) == 0 {
		return errors.New("at least one support quote is required")
	}
	for i, q := range s.SupportQuotes {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("support quote %d is empty", i+1)
		}
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone. "Local" and "" mean the system timezone.
func (s Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

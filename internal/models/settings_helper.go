package models

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/moodlit/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys missing from data keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultWindowDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultWindowDays); err != nil {
				return Settings{}, fmt.Errorf("parsing default_window_days: %w", err)
			}
		case constants.SettingBucketWindow:
			ws, err := ParseWindowStart(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing bucket_window: %w", err)
			}
			settings.BucketWindow = ws
		case constants.SettingSupportQuotes:
			var quotes []string
			if err := json.Unmarshal([]byte(value), &quotes); err != nil {
				return Settings{}, fmt.Errorf("parsing support_quotes: %w", err)
			}
			settings.SupportQuotes = quotes
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) (map[string]string, error) {
	quotes, err := json.Marshal(settings.SupportQuotes)
	if err != nil {
		return nil, fmt.Errorf("encoding support_quotes: %w", err)
	}
	return map[string]string{
		constants.SettingNotificationsEnabled: fmt.Sprintf("%t", settings.NotificationsEnabled),
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingDefaultWindowDays:    fmt.Sprintf("%d", settings.DefaultWindowDays),
		constants.SettingBucketWindow:         string(settings.BucketWindow),
		constants.SettingSupportQuotes:        string(quotes),
	}, nil
}

package model

import "time"

// IntRange is an inclusive bound for a numeric setting.
type IntRange struct {
	Min int
	Max int
}

// Contains reports whether value lies within the range.
func (r IntRange) Contains(value int) bool {
	return value >= r.Min && value <= r.Max
}

// Declared ranges for the numeric settings shown in the preferences form.
var (
	WorkMinutesRange       = IntRange{Min: 1, Max: 60}
	BreakMinutesRange      = IntRange{Min: 1, Max: 30}
	LongBreakMinutesRange  = IntRange{Min: 5, Max: 60}
	SessionsRange          = IntRange{Min: 2, Max: 10}
	InactivityTimeoutRange = IntRange{Min: 30, Max: 300}
)

// Settings defines the persisted user preferences.
type Settings struct {
	WorkMinutes            int
	BreakMinutes           int
	LongBreakMinutes       int
	SessionsUntilLongBreak int

	SoundEnabled    bool
	CustomSoundPath string
	MinimizeToTray  bool

	AutoStartBreak    bool
	AutoStartWork     bool
	AutoStartOnLaunch bool
	AutoRestartOnSkip bool

	ActivityDetectionEnabled bool
	InactivityTimeoutSeconds int
	PauseDuringBreaks        bool
}

// DefaultSettings returns the settings used when nothing valid is stored.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:              25,
		BreakMinutes:             5,
		LongBreakMinutes:         15,
		SessionsUntilLongBreak:   4,
		SoundEnabled:             true,
		MinimizeToTray:           true,
		AutoStartBreak:           true,
		AutoStartWork:            false,
		AutoStartOnLaunch:        true,
		AutoRestartOnSkip:        true,
		ActivityDetectionEnabled: true,
		InactivityTimeoutSeconds: 60,
		PauseDuringBreaks:        false,
	}
}

// Normalize replaces out-of-range numeric fields with the matching field of
// fallback.
func (settings Settings) Normalize(fallback Settings) Settings {
	settings.WorkMinutes = pick(settings.WorkMinutes, fallback.WorkMinutes, WorkMinutesRange)
	settings.BreakMinutes = pick(settings.BreakMinutes, fallback.BreakMinutes, BreakMinutesRange)
	settings.LongBreakMinutes = pick(settings.LongBreakMinutes, fallback.LongBreakMinutes, LongBreakMinutesRange)
	settings.SessionsUntilLongBreak = pick(settings.SessionsUntilLongBreak, fallback.SessionsUntilLongBreak, SessionsRange)
	settings.InactivityTimeoutSeconds = pick(settings.InactivityTimeoutSeconds, fallback.InactivityTimeoutSeconds, InactivityTimeoutRange)
	return settings
}

// InactivityTimeout returns the activity timeout as a duration.
func (settings Settings) InactivityTimeout() time.Duration {
	return time.Duration(settings.InactivityTimeoutSeconds) * time.Second
}

// TimerConfig converts settings to the state machine configuration.
func (settings Settings) TimerConfig() TimerConfig {
	return TimerConfig{
		Work:                   time.Duration(settings.WorkMinutes) * time.Minute,
		ShortBreak:             time.Duration(settings.BreakMinutes) * time.Minute,
		LongBreak:              time.Duration(settings.LongBreakMinutes) * time.Minute,
		SessionsUntilLongBreak: settings.SessionsUntilLongBreak,
		AutoStartBreak:         settings.AutoStartBreak,
		AutoStartWork:          settings.AutoStartWork,
		AutoRestartOnSkip:      settings.AutoRestartOnSkip,
		ActivityDetection:      settings.ActivityDetectionEnabled,
		PauseDuringBreaks:      settings.PauseDuringBreaks,
	}
}

func pick(value, fallback int, bounds IntRange) int {
	if bounds.Contains(value) {
		return value
	}
	return fallback
}

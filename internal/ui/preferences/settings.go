package preferences

import (
	"strconv"
	"strings"

	"breakreminder/internal/core/model"
)

// formValues is the raw content of the preferences form.
type formValues struct {
	WorkMinutes       string
	BreakMinutes      string
	LongBreakMinutes  string
	Sessions          string
	InactivitySeconds string
	CustomSoundPath   string

	SoundEnabled      bool
	MinimizeToTray    bool
	AutoStartBreak    bool
	AutoStartWork     bool
	AutoStartOnLaunch bool
	AutoRestartOnSkip bool
	ActivityDetection bool
	PauseDuringBreaks bool
}

func valuesFromSettings(settings model.Settings) formValues {
	return formValues{
		WorkMinutes:       strconv.Itoa(settings.WorkMinutes),
		BreakMinutes:      strconv.Itoa(settings.BreakMinutes),
		LongBreakMinutes:  strconv.Itoa(settings.LongBreakMinutes),
		Sessions:          strconv.Itoa(settings.SessionsUntilLongBreak),
		InactivitySeconds: strconv.Itoa(settings.InactivityTimeoutSeconds),
		CustomSoundPath:   settings.CustomSoundPath,
		SoundEnabled:      settings.SoundEnabled,
		MinimizeToTray:    settings.MinimizeToTray,
		AutoStartBreak:    settings.AutoStartBreak,
		AutoStartWork:     settings.AutoStartWork,
		AutoStartOnLaunch: settings.AutoStartOnLaunch,
		AutoRestartOnSkip: settings.AutoRestartOnSkip,
		ActivityDetection: settings.ActivityDetectionEnabled,
		PauseDuringBreaks: settings.PauseDuringBreaks,
	}
}

// parseSettings converts form values to settings. Numeric fields that do not
// parse or fall outside their range keep the previous value and are listed
// in invalid.
func parseSettings(values formValues, previous model.Settings) (model.Settings, []string) {
	settings := previous
	var invalid []string

	fields := []struct {
		name   string
		text   string
		target *int
		bounds model.IntRange
	}{
		{"Work time", values.WorkMinutes, &settings.WorkMinutes, model.WorkMinutesRange},
		{"Break time", values.BreakMinutes, &settings.BreakMinutes, model.BreakMinutesRange},
		{"Long break", values.LongBreakMinutes, &settings.LongBreakMinutes, model.LongBreakMinutesRange},
		{"Sessions until long break", values.Sessions, &settings.SessionsUntilLongBreak, model.SessionsRange},
		{"Inactivity timeout", values.InactivitySeconds, &settings.InactivityTimeoutSeconds, model.InactivityTimeoutRange},
	}
	for _, field := range fields {
		parsed, ok := parsePositiveInt(field.text)
		if !ok || !field.bounds.Contains(parsed) {
			invalid = append(invalid, field.name)
			continue
		}
		*field.target = parsed
	}

	settings.CustomSoundPath = strings.TrimSpace(values.CustomSoundPath)
	settings.SoundEnabled = values.SoundEnabled
	settings.MinimizeToTray = values.MinimizeToTray
	settings.AutoStartBreak = values.AutoStartBreak
	settings.AutoStartWork = values.AutoStartWork
	settings.AutoStartOnLaunch = values.AutoStartOnLaunch
	settings.AutoRestartOnSkip = values.AutoRestartOnSkip
	settings.ActivityDetectionEnabled = values.ActivityDetection
	settings.PauseDuringBreaks = values.PauseDuringBreaks

	return settings.Normalize(previous), invalid
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

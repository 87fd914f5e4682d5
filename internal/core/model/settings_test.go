package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettingsAreWithinRanges(t *testing.T) {
	defaults := DefaultSettings()

	assert.True(t, WorkMinutesRange.Contains(defaults.WorkMinutes))
	assert.True(t, BreakMinutesRange.Contains(defaults.BreakMinutes))
	assert.True(t, LongBreakMinutesRange.Contains(defaults.LongBreakMinutes))
	assert.True(t, SessionsRange.Contains(defaults.SessionsUntilLongBreak))
	assert.True(t, InactivityTimeoutRange.Contains(defaults.InactivityTimeoutSeconds))
	assert.Equal(t, defaults, defaults.Normalize(Settings{}))
}

func TestNormalizeFallsBackPerField(t *testing.T) {
	previous := DefaultSettings()
	previous.WorkMinutes = 50

	edited := previous
	edited.WorkMinutes = 0
	edited.BreakMinutes = 10
	edited.SessionsUntilLongBreak = 1
	edited.InactivityTimeoutSeconds = 900

	got := edited.Normalize(previous)

	assert.Equal(t, 50, got.WorkMinutes)
	assert.Equal(t, 10, got.BreakMinutes)
	assert.Equal(t, previous.SessionsUntilLongBreak, got.SessionsUntilLongBreak)
	assert.Equal(t, previous.InactivityTimeoutSeconds, got.InactivityTimeoutSeconds)
}

func TestTimerConfigConversion(t *testing.T) {
	settings := DefaultSettings()
	settings.PauseDuringBreaks = true

	config := settings.TimerConfig()

	assert.Equal(t, 25*time.Minute, config.Work)
	assert.Equal(t, 5*time.Minute, config.ShortBreak)
	assert.Equal(t, 15*time.Minute, config.LongBreak)
	assert.Equal(t, 4, config.SessionsUntilLongBreak)
	assert.True(t, config.AutoStartBreak)
	assert.False(t, config.AutoStartWork)
	assert.True(t, config.AutoRestartOnSkip)
	assert.True(t, config.ActivityDetection)
	assert.True(t, config.PauseDuringBreaks)
	assert.Equal(t, time.Minute, settings.InactivityTimeout())
}

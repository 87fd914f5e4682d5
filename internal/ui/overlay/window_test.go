package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"breakreminder/internal/core/timekeeper"

	"fyne.io/fyne/v2/test"
)

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "05:00", formatCountdown(5*time.Minute, false))
	assert.Equal(t, "⏸ 04:59", formatCountdown(4*time.Minute+59*time.Second, true))
	assert.Equal(t, "00:00", formatCountdown(-time.Second, false))
	assert.Equal(t, "60:00", formatCountdown(time.Hour, false))
}

func TestBreakTexts(t *testing.T) {
	assert.Equal(t, "Break Time!", breakTitle(timekeeper.BreakShort))
	assert.Equal(t, "Long Break Time!", breakTitle(timekeeper.BreakLong))
	assert.Contains(t, breakMessage(15), "15 minute")
	assert.Contains(t, breakMessage(1), "1 minute")
}

func TestWindowShowAndSkip(t *testing.T) {
	app := test.NewTempApp(t)
	overlay := New(app)

	skipped := 0
	overlay.SetOnSkip(func() { skipped++ })

	overlay.showUnsafe(15, timekeeper.BreakLong)
	assert.True(t, overlay.visible)
	assert.Equal(t, "Long Break Time!", overlay.titleLabel.Text)
	assert.Equal(t, "15:00", overlay.timerLabel.Text)

	overlay.setRemainingUnsafe(90*time.Second, true)
	assert.Equal(t, "⏸ 01:30", overlay.timerLabel.Text)

	test.Tap(overlay.skipButton)
	assert.Equal(t, 1, skipped)

	overlay.closeUnsafe()
	assert.False(t, overlay.visible)
	assert.NotPanics(t, overlay.closeUnsafe)
}

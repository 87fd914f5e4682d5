package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"breakreminder/internal/core/timekeeper"

	"fyne.io/fyne/v2/test"
)

func TestToggleText(t *testing.T) {
	assert.Equal(t, "Stop", toggleText(timekeeper.Snapshot{Phase: timekeeper.PhaseWorking, Running: true}))
	assert.Equal(t, "Start Break", toggleText(timekeeper.Snapshot{Phase: timekeeper.PhaseShortBreak}))
	assert.Equal(t, "Start Work", toggleText(timekeeper.Snapshot{Phase: timekeeper.PhaseWorking}))
	assert.Equal(t, "Start Work", toggleText(timekeeper.Snapshot{Phase: timekeeper.PhaseIdle}))
}

func TestSessionText(t *testing.T) {
	state := timekeeper.Snapshot{SessionCount: 2, SessionsUntilLongBreak: 4}
	assert.Equal(t, "Session: 2 / 4", sessionText(state))
}

func TestWindowRendersInitialState(t *testing.T) {
	app := test.NewTempApp(t)
	state := timekeeper.Snapshot{
		Phase:                  timekeeper.PhaseWorking,
		Remaining:              25 * time.Minute,
		SessionsUntilLongBreak: 4,
		Status:                 timekeeper.StatusReady,
	}

	control := New(app, "Break Reminder", state, Callbacks{})

	assert.Equal(t, timekeeper.StatusReady, control.statusLabel.Text)
	assert.Equal(t, "25:00", control.timerLabel.Text)
	assert.Equal(t, "Session: 0 / 4", control.sessionLabel.Text)
	assert.Equal(t, "Start Work", control.toggleButton.Text)
}

func TestWindowButtonsInvokeCallbacks(t *testing.T) {
	app := test.NewTempApp(t)
	toggles, resets, prefs := 0, 0, 0
	control := New(app, "Break Reminder", timekeeper.Snapshot{}, Callbacks{
		OnToggle:      func() { toggles++ },
		OnReset:       func() { resets++ },
		OnPreferences: func() { prefs++ },
	})

	test.Tap(control.toggleButton)
	test.Tap(control.resetButton)

	assert.Equal(t, 1, toggles)
	assert.Equal(t, 1, resets)
	assert.Equal(t, 0, prefs)
}

func TestCloseHidesOnlyWhileRunningWithTray(t *testing.T) {
	app := test.NewTempApp(t)
	hides, quits := 0, 0
	control := New(app, "Break Reminder", timekeeper.Snapshot{}, Callbacks{
		OnHide: func() { hides++ },
		OnQuit: func() { quits++ },
	})

	control.SetMinimizeToTray(true)
	control.handleClose()
	assert.Equal(t, 1, quits, "stopped timer quits on close")

	control.mu.Lock()
	control.running = true
	control.mu.Unlock()
	control.handleClose()
	assert.Equal(t, 1, hides)

	control.SetMinimizeToTray(false)
	control.handleClose()
	assert.Equal(t, 2, quits)
}

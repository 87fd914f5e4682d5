package tray

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"breakreminder/internal/core/timekeeper"
)

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Status: Working - Stay focused!", statusText(timekeeper.Snapshot{Status: timekeeper.StatusWorking}))
	assert.Equal(t, "Status: Working - Stay focused! (paused)", statusText(timekeeper.Snapshot{Status: timekeeper.StatusWorking, Paused: true}))
}

func TestTooltipText(t *testing.T) {
	running := timekeeper.Snapshot{Phase: timekeeper.PhaseWorking, Running: true, Remaining: 12*time.Minute + 5*time.Second}
	assert.Equal(t, "Break Reminder - Work 12:05", tooltipText("Break Reminder", running))

	onBreak := timekeeper.Snapshot{Phase: timekeeper.PhaseLongBreak, Running: true, Remaining: 15 * time.Minute}
	assert.Equal(t, "Break Reminder - Break 15:00", tooltipText("Break Reminder", onBreak))

	stopped := timekeeper.Snapshot{Phase: timekeeper.PhaseWorking, Status: timekeeper.StatusStopped}
	assert.Equal(t, "Break Reminder - Timer stopped", tooltipText("Break Reminder", stopped))
}

func TestApplyStateTogglesMenuItems(t *testing.T) {
	skipped, toggled := 0, 0
	manager := New(nil, "Break Reminder", Callbacks{
		OnSkipBreak: func() { skipped++ },
		OnToggle:    func() { toggled++ },
	})
	assert.True(t, manager.skipItem.Disabled)

	changed := manager.applyState(timekeeper.Snapshot{Phase: timekeeper.PhaseShortBreak, Running: true, Status: timekeeper.StatusOnBreak})
	assert.True(t, changed)
	assert.False(t, manager.skipItem.Disabled)
	assert.Equal(t, "Stop", manager.toggleItem.Label)
	assert.Equal(t, "Status: Taking a break - Relax!", manager.statusItem.Label)

	changed = manager.applyState(timekeeper.Snapshot{Phase: timekeeper.PhaseShortBreak, Running: true, Status: timekeeper.StatusOnBreak})
	assert.False(t, changed)

	manager.skipItem.Action()
	manager.toggleItem.Action()
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, toggled)
}

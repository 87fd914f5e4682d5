//go:build linux

package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis("1500\n")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, idle)

	_, err = parseIdleMillis("garbage")
	assert.Error(t, err)
}

func TestAutostartDesktopEntry(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	registrar, err := NewRegistrar("Break Reminder", "/opt/break reminder/bin")
	require.NoError(t, err)

	assert.False(t, registrar.IsEnabled())

	message, err := registrar.Enable()
	require.NoError(t, err)
	assert.Equal(t, "Auto-startup enabled successfully", message)
	assert.True(t, registrar.IsEnabled())

	message, err = registrar.Disable()
	require.NoError(t, err)
	assert.Equal(t, "Auto-startup disabled successfully", message)
	assert.False(t, registrar.IsEnabled())

	message, err = registrar.Disable()
	require.NoError(t, err)
	assert.Equal(t, "Auto-startup was not enabled", message)
}

func TestBuildDesktopEntryQuotesPath(t *testing.T) {
	entry := buildDesktopEntry("Break Reminder", "/opt/break reminder/bin")

	assert.Contains(t, entry, `Exec="/opt/break reminder/bin" --minimized`)
	assert.Equal(t, "break-reminder.desktop", desktopFileName("Break Reminder"))
}

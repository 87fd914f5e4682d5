package tray

import (
	"fmt"

	"breakreminder/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnSkipBreak   func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app          desktop.App
	title        string
	menu         *fyne.Menu
	statusItem   *fyne.MenuItem
	activityItem *fyne.MenuItem
	toggleItem   *fyne.MenuItem
	skipItem     *fyne.MenuItem
	callbacks    Callbacks
	tooltip      string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.activityItem = fyne.NewMenuItem("Activity: Active", nil)
	manager.activityItem.Disabled = true

	show := fyne.NewMenuItem("Show", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.skipItem = fyne.NewMenuItem("Skip break", func() {
		if manager.callbacks.OnSkipBreak != nil {
			manager.callbacks.OnSkipBreak()
		}
	})
	manager.skipItem.Disabled = true

	preferences := fyne.NewMenuItem("Settings", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(title,
		manager.statusItem,
		manager.activityItem,
		fyne.NewMenuItemSeparator(),
		show,
		manager.toggleItem,
		manager.skipItem,
		preferences,
		fyne.NewMenuItemSeparator(),
		quit,
	)
	if app != nil {
		app.SetSystemTrayMenu(manager.menu)
	}

	return manager
}

// Render updates the menu and tooltip from a session snapshot.
func (manager *Manager) Render(state timekeeper.Snapshot) {
	fyne.Do(func() {
		manager.renderUnsafe(state)
	})
}

// SetActivity updates the activity menu label.
func (manager *Manager) SetActivity(label string) {
	fyne.Do(func() {
		if manager.activityItem.Label == label {
			return
		}
		manager.activityItem.Label = label
		manager.refreshMenu()
	})
}

func (manager *Manager) renderUnsafe(state timekeeper.Snapshot) {
	changed := manager.applyState(state)
	if changed {
		manager.refreshMenu()
	}

	tooltip := tooltipText(manager.title, state)
	if tooltip != manager.tooltip && manager.app != nil {
		manager.tooltip = tooltip
		systray.SetTooltip(tooltip)
	}
}

// applyState updates menu item labels and reports whether any changed.
func (manager *Manager) applyState(state timekeeper.Snapshot) bool {
	status := statusText(state)
	toggle := "Start"
	if state.Running {
		toggle = "Stop"
	}
	skipDisabled := !state.Phase.IsBreak()

	changed := manager.statusItem.Label != status ||
		manager.toggleItem.Label != toggle ||
		manager.skipItem.Disabled != skipDisabled

	manager.statusItem.Label = status
	manager.toggleItem.Label = toggle
	manager.skipItem.Disabled = skipDisabled
	return changed
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.menu.Refresh()
	}
}

func statusText(state timekeeper.Snapshot) string {
	status := state.Status
	if state.Paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return fmt.Sprintf("Status: %s", status)
}

func tooltipText(title string, state timekeeper.Snapshot) string {
	if !state.Running {
		return fmt.Sprintf("%s - %s", title, state.Status)
	}
	phase := "Work"
	if state.Phase.IsBreak() {
		phase = "Break"
	}
	return fmt.Sprintf("%s - %s %s", title, phase, timekeeper.FormatRemaining(state.Remaining))
}

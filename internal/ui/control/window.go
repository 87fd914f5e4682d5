// Package control implements the main timer window.
package control

import (
	"fmt"
	"sync"

	"breakreminder/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines main window action handlers.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnPreferences func()
	OnHide        func()
	OnQuit        func()
}

// Window is the main timer window.
type Window struct {
	window        fyne.Window
	callbacks     Callbacks
	titleLabel    *widget.Label
	statusLabel   *widget.Label
	activityLabel *widget.Label
	timerLabel    *widget.Label
	sessionLabel  *widget.Label
	toggleButton  *widget.Button
	resetButton   *widget.Button

	mu             sync.Mutex
	minimizeToTray bool
	running        bool
}

// New creates the main window with the initial session state.
func New(app fyne.App, title string, state timekeeper.Snapshot, callbacks Callbacks) *Window {
	window := app.NewWindow(title)

	titleLabel := widget.NewLabelWithStyle("⏰ "+title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	statusLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	activityLabel := widget.NewLabelWithStyle("Activity: Active", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	timerLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true})
	timerLabel.SizeName = theme.SizeNameHeadingText
	sessionLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	control := &Window{
		window:        window,
		callbacks:     callbacks,
		titleLabel:    titleLabel,
		statusLabel:   statusLabel,
		activityLabel: activityLabel,
		timerLabel:    timerLabel,
		sessionLabel:  sessionLabel,
	}

	control.toggleButton = widget.NewButton("Start Work", func() {
		if control.callbacks.OnToggle != nil {
			control.callbacks.OnToggle()
		}
	})
	control.toggleButton.Importance = widget.HighImportance
	control.resetButton = widget.NewButton("Reset", func() {
		if control.callbacks.OnReset != nil {
			control.callbacks.OnReset()
		}
	})
	settingsButton := widget.NewButton("Settings", func() {
		if control.callbacks.OnPreferences != nil {
			control.callbacks.OnPreferences()
		}
	})

	buttons := container.NewHBox(layout.NewSpacer(), control.toggleButton, control.resetButton, settingsButton, layout.NewSpacer())
	content := container.NewVBox(titleLabel, statusLabel, activityLabel, timerLabel, sessionLabel, buttons)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(360, 280))
	window.SetCloseIntercept(control.handleClose)

	control.renderUnsafe(state)
	return control
}

// Window returns the underlying fyne window.
func (control *Window) Window() fyne.Window {
	return control.window
}

// Show raises the window.
func (control *Window) Show() {
	fyne.Do(func() {
		control.window.Show()
		control.window.RequestFocus()
	})
}

// SetMinimizeToTray selects whether closing hides the window while the timer
// runs.
func (control *Window) SetMinimizeToTray(enabled bool) {
	control.mu.Lock()
	control.minimizeToTray = enabled
	control.mu.Unlock()
}

// Render updates the labels from a session snapshot.
func (control *Window) Render(state timekeeper.Snapshot) {
	control.mu.Lock()
	control.running = state.Running
	control.mu.Unlock()

	fyne.Do(func() {
		control.renderUnsafe(state)
	})
}

// SetActivity updates the activity label.
func (control *Window) SetActivity(label string) {
	fyne.Do(func() {
		control.activityLabel.SetText(label)
	})
}

func (control *Window) renderUnsafe(state timekeeper.Snapshot) {
	control.statusLabel.SetText(state.Status)
	control.timerLabel.SetText(timekeeper.FormatRemaining(state.Remaining))
	control.sessionLabel.SetText(sessionText(state))
	control.toggleButton.SetText(toggleText(state))
}

func (control *Window) handleClose() {
	if control.shouldHide() {
		control.window.Hide()
		if control.callbacks.OnHide != nil {
			control.callbacks.OnHide()
		}
		return
	}
	if control.callbacks.OnQuit != nil {
		control.callbacks.OnQuit()
	}
}

func (control *Window) shouldHide() bool {
	control.mu.Lock()
	defer control.mu.Unlock()
	return control.minimizeToTray && control.running
}

func toggleText(state timekeeper.Snapshot) string {
	switch {
	case state.Running:
		return "Stop"
	case state.Phase.IsBreak():
		return "Start Break"
	default:
		return "Start Work"
	}
}

func sessionText(state timekeeper.Snapshot) string {
	return fmt.Sprintf("Session: %d / %d", state.SessionCount, state.SessionsUntilLongBreak)
}

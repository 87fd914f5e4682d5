package preferences

import (
	"errors"
	"fmt"
	"strings"

	"breakreminder/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const invalidNumbersMessage = "Please enter valid numbers for all time settings"

// Callbacks defines preferences window handlers.
type Callbacks struct {
	// OnSave persists and applies settings. A returned error is shown to the
	// user; the settings stay applied.
	OnSave func(model.Settings) error
	// AutostartEnabled reports the current login registration.
	AutostartEnabled func() bool
	// OnAutostart changes the login registration and returns the state now in
	// effect.
	OnAutostart func(want bool) (bool, string, error)
}

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  model.Settings
	callbacks Callbacks

	workMinutes       *widget.Entry
	breakMinutes      *widget.Entry
	longBreakMinutes  *widget.Entry
	sessions          *widget.Entry
	inactivitySeconds *widget.Entry
	soundPath         *widget.Entry

	sound             *widget.Check
	minimizeToTray    *widget.Check
	autoStartBreak    *widget.Check
	autoStartWork     *widget.Check
	autoStartOnLaunch *widget.Check
	autoRestartOnSkip *widget.Check
	activity          *widget.Check
	pauseDuringBreaks *widget.Check
	autostart         *widget.Check

	syncingAutostart bool
}

// New creates a preferences window.
func New(app fyne.App, settings model.Settings, callbacks Callbacks) *Window {
	window := app.NewWindow("Break Reminder Settings")

	prefs := &Window{
		window:            window,
		settings:          settings,
		callbacks:         callbacks,
		workMinutes:       widget.NewEntry(),
		breakMinutes:      widget.NewEntry(),
		longBreakMinutes:  widget.NewEntry(),
		sessions:          widget.NewEntry(),
		inactivitySeconds: widget.NewEntry(),
		soundPath:         widget.NewEntry(),
		sound:             widget.NewCheck("Enable sound notifications", nil),
		minimizeToTray:    widget.NewCheck("Minimize to system tray", nil),
		autoStartBreak:    widget.NewCheck("Auto-start breaks", nil),
		autoStartWork:     widget.NewCheck("Auto-start work after break", nil),
		autoStartOnLaunch: widget.NewCheck("Auto-start timer on launch", nil),
		autoRestartOnSkip: widget.NewCheck("Auto-restart work when skipping break", nil),
		activity:          widget.NewCheck("Enable activity detection", nil),
		pauseDuringBreaks: widget.NewCheck("Pause timer during breaks when inactive", nil),
		autostart:         widget.NewCheck("Start with system", nil),
	}
	prefs.soundPath.SetPlaceHolder("System default")
	prefs.autostart.OnChanged = prefs.handleAutostart
	if callbacks.OnAutostart == nil {
		prefs.autostart.Disable()
	}

	browseButton := widget.NewButton("Browse...", prefs.browseSound)

	timerForm := widget.NewForm(
		widget.NewFormItem(rangeLabel("Work time (min)", model.WorkMinutesRange), prefs.workMinutes),
		widget.NewFormItem(rangeLabel("Break time (min)", model.BreakMinutesRange), prefs.breakMinutes),
		widget.NewFormItem(rangeLabel("Long break (min)", model.LongBreakMinutesRange), prefs.longBreakMinutes),
		widget.NewFormItem(rangeLabel("Sessions until long break", model.SessionsRange), prefs.sessions),
	)
	activityForm := widget.NewForm(
		widget.NewFormItem(rangeLabel("Inactivity timeout (sec)", model.InactivityTimeoutRange), prefs.inactivitySeconds),
	)
	soundRow := container.NewBorder(nil, nil, nil, browseButton, prefs.soundPath)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer Settings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		timerForm,
		widget.NewLabelWithStyle("Activity Detection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		activityForm,
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		soundRow,
		widget.NewLabelWithStyle("Behavior", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.autoStartBreak,
		prefs.autoStartWork,
		prefs.autoStartOnLaunch,
		prefs.autoRestartOnSkip,
		prefs.activity,
		prefs.pauseDuringBreaks,
		prefs.autostart,
		prefs.minimizeToTray,
	)

	saveButton := widget.NewButton("Save Settings", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form))
	window.SetContent(content)
	window.Resize(fyne.NewSize(440, 620))
	window.SetCloseIntercept(window.Hide)

	prefs.fill(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	fyne.Do(func() {
		prefs.refreshAutostart()
		prefs.window.Show()
		prefs.window.RequestFocus()
	})
}

// UpdateSettings replaces window values, for example after the settings file
// changed on disk.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.fill(settings)
}

func (prefs *Window) fill(settings model.Settings) {
	values := valuesFromSettings(settings)
	prefs.workMinutes.SetText(values.WorkMinutes)
	prefs.breakMinutes.SetText(values.BreakMinutes)
	prefs.longBreakMinutes.SetText(values.LongBreakMinutes)
	prefs.sessions.SetText(values.Sessions)
	prefs.inactivitySeconds.SetText(values.InactivitySeconds)
	prefs.soundPath.SetText(values.CustomSoundPath)
	prefs.sound.SetChecked(values.SoundEnabled)
	prefs.minimizeToTray.SetChecked(values.MinimizeToTray)
	prefs.autoStartBreak.SetChecked(values.AutoStartBreak)
	prefs.autoStartWork.SetChecked(values.AutoStartWork)
	prefs.autoStartOnLaunch.SetChecked(values.AutoStartOnLaunch)
	prefs.autoRestartOnSkip.SetChecked(values.AutoRestartOnSkip)
	prefs.activity.SetChecked(values.ActivityDetection)
	prefs.pauseDuringBreaks.SetChecked(values.PauseDuringBreaks)
	prefs.refreshAutostart()
}

func (prefs *Window) values() formValues {
	return formValues{
		WorkMinutes:       prefs.workMinutes.Text,
		BreakMinutes:      prefs.breakMinutes.Text,
		LongBreakMinutes:  prefs.longBreakMinutes.Text,
		Sessions:          prefs.sessions.Text,
		InactivitySeconds: prefs.inactivitySeconds.Text,
		CustomSoundPath:   prefs.soundPath.Text,
		SoundEnabled:      prefs.sound.Checked,
		MinimizeToTray:    prefs.minimizeToTray.Checked,
		AutoStartBreak:    prefs.autoStartBreak.Checked,
		AutoStartWork:     prefs.autoStartWork.Checked,
		AutoStartOnLaunch: prefs.autoStartOnLaunch.Checked,
		AutoRestartOnSkip: prefs.autoRestartOnSkip.Checked,
		ActivityDetection: prefs.activity.Checked,
		PauseDuringBreaks: prefs.pauseDuringBreaks.Checked,
	}
}

func (prefs *Window) handleSave() {
	settings, invalid := parseSettings(prefs.values(), prefs.settings)
	prefs.settings = settings
	// Invalid entries snap back to the value that stays in effect.
	prefs.fill(settings)

	var saveErr error
	if prefs.callbacks.OnSave != nil {
		saveErr = prefs.callbacks.OnSave(settings)
	}

	switch {
	case len(invalid) > 0:
		dialog.ShowError(fmt.Errorf("%s (%s)", invalidNumbersMessage, strings.Join(invalid, ", ")), prefs.window)
	case saveErr != nil:
		dialog.ShowError(saveErr, prefs.window)
	default:
		dialog.ShowInformation("Settings Saved", "Your settings have been saved!", prefs.window)
	}
}

func (prefs *Window) handleAutostart(want bool) {
	if prefs.syncingAutostart || prefs.callbacks.OnAutostart == nil {
		return
	}
	enabled, message, err := prefs.callbacks.OnAutostart(want)
	prefs.setAutostartChecked(enabled)
	if err != nil {
		if message == "" {
			message = "Failed to change auto-startup"
		}
		dialog.ShowError(errors.New(message+": "+err.Error()), prefs.window)
		return
	}
	if message != "" {
		dialog.ShowInformation("Auto-startup", message, prefs.window)
	}
}

func (prefs *Window) refreshAutostart() {
	if prefs.callbacks.AutostartEnabled == nil {
		return
	}
	prefs.setAutostartChecked(prefs.callbacks.AutostartEnabled())
}

func (prefs *Window) setAutostartChecked(checked bool) {
	prefs.syncingAutostart = true
	prefs.autostart.SetChecked(checked)
	prefs.syncingAutostart = false
}

func (prefs *Window) browseSound() {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		prefs.soundPath.SetText(reader.URI().Path())
	}, prefs.window)
	picker.SetFilter(storage.NewExtensionFileFilter([]string{".wav", ".mp3", ".ogg", ".oga", ".aiff"}))
	picker.Show()
}

func rangeLabel(label string, bounds model.IntRange) string {
	return fmt.Sprintf("%s [%d-%d]", label, bounds.Min, bounds.Max)
}

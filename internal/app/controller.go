// Package app connects the session timer and activity monitor to the
// notification, sound and window collaborators.
package app

import (
	"context"
	"sync"
	"time"

	"breakreminder/internal/core/activity"
	"breakreminder/internal/core/model"
	"breakreminder/internal/core/timekeeper"
)

// Activity labels shown in the main window.
const (
	ActivityMonitoring  = "Activity: Monitoring"
	ActivityActive      = "Activity: Active"
	ActivityAway        = "Activity: Away (Timer Paused)"
	ActivityDisabled    = "Activity: Disabled"
	ActivityUnavailable = "Activity: Unavailable"
)

// Notifier shows desktop notifications. Failures are the implementation's
// concern and never reach the timer.
type Notifier interface {
	Notify(title, message string)
}

// SoundPlayer plays an alert sound, falling back to the system alert.
type SoundPlayer interface {
	Play(soundPath string)
}

// BreakPresenter displays the break countdown.
type BreakPresenter interface {
	Show(minutes int, kind timekeeper.BreakKind)
	SetRemaining(remaining time.Duration, paused bool)
	Close()
}

// StatusView renders the session state.
type StatusView interface {
	Render(state timekeeper.Snapshot)
	SetActivity(label string)
}

// Collaborators groups the optional outputs of a Controller. Nil members are
// skipped.
type Collaborators struct {
	Notifier  Notifier
	Sound     SoundPlayer
	Presenter BreakPresenter
	Views     []StatusView
}

// Controller dispatches timer events and activity signals to collaborators.
type Controller struct {
	mu        sync.Mutex
	settings  model.Settings
	out       Collaborators
	breakOpen bool
}

// NewController creates a Controller for the given settings.
func NewController(settings model.Settings, out Collaborators) *Controller {
	return &Controller{settings: settings, out: out}
}

// SetSettings replaces the settings used for sound decisions.
func (controller *Controller) SetSettings(settings model.Settings) {
	controller.mu.Lock()
	controller.settings = settings
	controller.mu.Unlock()
}

// Run consumes events and signals until ctx is done or both channels close.
func (controller *Controller) Run(ctx context.Context, events <-chan timekeeper.Event, signals <-chan activity.Signal) {
	for events != nil || signals != nil {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			controller.HandleEvent(event)
		case signal, ok := <-signals:
			if !ok {
				signals = nil
				continue
			}
			controller.HandleSignal(signal)
		}
	}
}

// HandleEvent routes one timer event.
func (controller *Controller) HandleEvent(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventNotify:
		controller.notify(event.Title, event.Message)
	case timekeeper.EventShowBreak:
		controller.setBreakOpen(true)
		if controller.out.Presenter != nil {
			controller.out.Presenter.Show(event.BreakMinutes, event.BreakKind)
		}
	case timekeeper.EventCloseBreak:
		controller.setBreakOpen(false)
		if controller.out.Presenter != nil {
			controller.out.Presenter.Close()
		}
	case timekeeper.EventTick, timekeeper.EventStatus, timekeeper.EventPauseChange:
		controller.render(event.State)
	}
}

// HandleSignal routes one activity signal.
func (controller *Controller) HandleSignal(signal activity.Signal) {
	switch signal {
	case activity.SignalPaused:
		controller.SetActivity(ActivityAway)
	case activity.SignalResumed:
		controller.SetActivity(ActivityActive)
	}
}

// SetActivity updates the activity label on every view.
func (controller *Controller) SetActivity(label string) {
	for _, view := range controller.out.Views {
		view.SetActivity(label)
	}
}

func (controller *Controller) notify(title, message string) {
	controller.mu.Lock()
	settings := controller.settings
	controller.mu.Unlock()

	if controller.out.Notifier != nil {
		controller.out.Notifier.Notify(title, message)
	}
	if settings.SoundEnabled && controller.out.Sound != nil {
		controller.out.Sound.Play(settings.CustomSoundPath)
	}
}

func (controller *Controller) render(state timekeeper.Snapshot) {
	for _, view := range controller.out.Views {
		view.Render(state)
	}

	controller.mu.Lock()
	open := controller.breakOpen
	controller.mu.Unlock()
	// Paused breaks keep updating the display; only the decrement stops.
	if open && state.Phase.IsBreak() && controller.out.Presenter != nil {
		controller.out.Presenter.SetRemaining(state.Remaining, state.Paused)
	}
}

func (controller *Controller) setBreakOpen(open bool) {
	controller.mu.Lock()
	controller.breakOpen = open
	controller.mu.Unlock()
}

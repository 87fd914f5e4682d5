package app

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"breakreminder/internal/core/activity"
	"breakreminder/internal/core/model"
	"breakreminder/internal/platform"
)

// TimerUpdater receives new timer configuration.
type TimerUpdater interface {
	UpdateConfig(config model.TimerConfig) error
}

// ActivityToggler is the part of the activity monitor driven by settings.
type ActivityToggler interface {
	Start() error
	Stop()
	Running() bool
	SetTimeout(timeout time.Duration)
}

// SettingsSaver persists settings.
type SettingsSaver interface {
	Save(settings model.Settings) error
}

// SettingsApplier pushes settings into the running components. Apply and
// Save may be called from the UI and the settings watcher concurrently.
type SettingsApplier struct {
	Store      SettingsSaver
	Timer      TimerUpdater
	Monitor    ActivityToggler
	Controller *Controller

	mu sync.Mutex
}

// Apply updates the timer, activity monitor and controller. Failures are
// logged; none of them stops the timer.
func (applier *SettingsApplier) Apply(settings model.Settings) {
	applier.mu.Lock()
	defer applier.mu.Unlock()

	if applier.Timer != nil {
		if err := applier.Timer.UpdateConfig(settings.TimerConfig()); err != nil {
			log.Printf("update timer config: %v", err)
		}
	}
	if applier.Controller != nil {
		applier.Controller.SetSettings(settings)
	}
	applier.applyActivity(settings)
}

// Save persists settings and then applies them. The save error is returned so
// the caller can tell the user, but the new values are applied regardless.
func (applier *SettingsApplier) Save(settings model.Settings) error {
	var saveErr error
	if applier.Store != nil {
		if err := applier.Store.Save(settings); err != nil {
			saveErr = fmt.Errorf("save settings: %w", err)
		}
	}
	applier.Apply(settings)
	return saveErr
}

func (applier *SettingsApplier) applyActivity(settings model.Settings) {
	if applier.Monitor == nil {
		return
	}
	applier.Monitor.SetTimeout(settings.InactivityTimeout())

	if !settings.ActivityDetectionEnabled {
		if applier.Monitor.Running() {
			applier.Monitor.Stop()
		}
		applier.setActivity(ActivityDisabled)
		return
	}
	if applier.Monitor.Running() {
		return
	}
	if err := applier.Monitor.Start(); err != nil {
		if errors.Is(err, activity.ErrNoSources) {
			log.Printf("activity detection unavailable: %v", err)
		} else {
			log.Printf("start activity monitor: %v", err)
		}
		applier.setActivity(ActivityUnavailable)
		return
	}
	applier.setActivity(ActivityMonitoring)
}

func (applier *SettingsApplier) setActivity(label string) {
	if applier.Controller != nil {
		applier.Controller.SetActivity(label)
	}
}

// AutostartResult describes the outcome of SyncAutostart.
type AutostartResult struct {
	Enabled bool
	Changed bool
	Message string
	Err     error
}

// SyncAutostart makes the login registration match want. On failure Enabled
// reports the registration state that is still in effect so the UI control
// can be reverted.
func SyncAutostart(registrar platform.Registrar, want bool) AutostartResult {
	if registrar == nil {
		return AutostartResult{Err: errors.New("auto-startup is not supported")}
	}
	current := registrar.IsEnabled()
	if current == want {
		return AutostartResult{Enabled: current}
	}

	var (
		message string
		err     error
	)
	if want {
		message, err = registrar.Enable()
	} else {
		message, err = registrar.Disable()
	}
	if err != nil {
		return AutostartResult{Enabled: current, Message: message, Err: err}
	}
	return AutostartResult{Enabled: want, Changed: true, Message: message}
}

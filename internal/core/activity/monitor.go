// Package activity tracks user input and reports when the user walks away.
package activity

import (
	"errors"
	"log"
	"sync"
	"time"
)

// ErrNoSources indicates that no input source could be started.
var ErrNoSources = errors.New("no activity sources available")

// Signal is emitted when the activity state flips.
type Signal string

const (
	SignalPaused  Signal = "paused"
	SignalResumed Signal = "resumed"
)

// Source feeds input activity into a Monitor.
type Source interface {
	Start(report func(at time.Time)) error
	Stop()
}

// Config contains runtime options for Monitor.
type Config struct {
	Timeout       time.Duration
	CheckInterval time.Duration
	Now           func() time.Time
}

// Monitor keeps the last input timestamp and flips to inactive once no input
// has been seen for longer than the timeout.
type Monitor struct {
	// lifecycle serializes Start and Stop; mu guards state shared with
	// source callbacks and the check loop.
	lifecycle    sync.Mutex
	mu           sync.Mutex
	timeout      time.Duration
	interval     time.Duration
	now          func() time.Time
	sources      []Source
	started      []Source
	listeners    []chan Signal
	lastActivity time.Time
	active       bool
	running      bool
	stopCh       chan struct{}
	doneCh       chan struct{}
}

// New creates a stopped Monitor.
func New(config Config) *Monitor {
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Second
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Monitor{
		timeout:  config.Timeout,
		interval: config.CheckInterval,
		now:      config.Now,
		active:   true,
	}
}

// AddSource registers an input source used by the next Start.
func (monitor *Monitor) AddSource(source Source) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.sources = append(monitor.sources, source)
}

// Subscribe registers a channel receiving paused/resumed signals.
func (monitor *Monitor) Subscribe(buffer int) <-chan Signal {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Signal, buffer)
	monitor.mu.Lock()
	monitor.listeners = append(monitor.listeners, ch)
	monitor.mu.Unlock()
	return ch
}

// SetTimeout changes the inactivity timeout.
func (monitor *Monitor) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	monitor.mu.Lock()
	monitor.timeout = timeout
	monitor.mu.Unlock()
}

// Start subscribes to every source and launches the periodic check. At least
// one source has to start; otherwise ErrNoSources is returned and the monitor
// stays stopped.
func (monitor *Monitor) Start() error {
	monitor.lifecycle.Lock()
	defer monitor.lifecycle.Unlock()

	monitor.mu.Lock()
	if monitor.running {
		monitor.mu.Unlock()
		return nil
	}
	sources := append([]Source(nil), monitor.sources...)
	monitor.mu.Unlock()

	var started []Source
	for _, source := range sources {
		if err := source.Start(monitor.ReportEventAt); err != nil {
			log.Printf("activity source: %v", err)
			continue
		}
		started = append(started, source)
	}
	if len(started) == 0 {
		return ErrNoSources
	}

	monitor.mu.Lock()
	monitor.started = started
	monitor.lastActivity = monitor.now()
	monitor.active = true
	monitor.running = true
	monitor.stopCh = make(chan struct{})
	monitor.doneCh = make(chan struct{})
	stopCh, doneCh := monitor.stopCh, monitor.doneCh
	monitor.mu.Unlock()

	go monitor.run(stopCh, doneCh)
	return nil
}

// Stop releases all sources and ends the periodic check.
func (monitor *Monitor) Stop() {
	monitor.lifecycle.Lock()
	defer monitor.lifecycle.Unlock()

	monitor.mu.Lock()
	if !monitor.running {
		monitor.mu.Unlock()
		return
	}
	monitor.running = false
	monitor.active = true
	started := monitor.started
	monitor.started = nil
	close(monitor.stopCh)
	doneCh := monitor.doneCh
	monitor.mu.Unlock()

	for _, source := range started {
		source.Stop()
	}

	select {
	case <-doneCh:
	case <-time.After(time.Second):
	}
}

// Running reports whether monitoring is active.
func (monitor *Monitor) Running() bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.running
}

// Active reports whether the user is considered present. A stopped monitor
// always reports true.
func (monitor *Monitor) Active() bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return !monitor.running || monitor.active
}

// LastActivity returns the timestamp of the most recent input.
func (monitor *Monitor) LastActivity() time.Time {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.lastActivity
}

// ReportEvent records input happening now.
func (monitor *Monitor) ReportEvent() {
	monitor.ReportEventAt(monitor.now())
}

// ReportEventAt records input that happened at the given time.
func (monitor *Monitor) ReportEventAt(at time.Time) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	if !monitor.running || at.Before(monitor.lastActivity) {
		return
	}
	monitor.lastActivity = at
	if !monitor.active {
		monitor.active = true
		monitor.emitLocked(SignalResumed)
	}
}

// Check flips the monitor to inactive once the timeout has passed.
func (monitor *Monitor) Check() {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	if !monitor.running || !monitor.active {
		return
	}
	if monitor.now().Sub(monitor.lastActivity) > monitor.timeout {
		monitor.active = false
		monitor.emitLocked(SignalPaused)
	}
}

func (monitor *Monitor) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(monitor.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			monitor.Check()
		}
	}
}

func (monitor *Monitor) emitLocked(signal Signal) {
	for _, ch := range monitor.listeners {
		select {
		case ch <- signal:
		default:
		}
	}
}

package timekeeper

import (
	"errors"
	"sync"
	"time"

	"breakreminder/internal/core/model"
)

// ErrClosed is returned by commands issued after Close.
var ErrClosed = errors.New("timekeeper closed")

// ErrNotLaunched is returned by commands issued before Launch.
var ErrNotLaunched = errors.New("timekeeper not launched")

const shutdownWait = time.Second

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
}

type command func(machine *Machine)

// TimeKeeper runs the session Machine on a single goroutine. UI commands are
// marshaled onto that goroutine and observers receive events on channels.
type TimeKeeper struct {
	mu       sync.Mutex
	options  Config
	machine  *Machine
	snapshot Snapshot
	events   []chan Event
	commands chan command
	stopCh   chan struct{}
	doneCh   chan struct{}
	launched bool
	closed   bool
}

// New creates a TimeKeeper with the provided configuration.
func New(config model.TimerConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	keeper := &TimeKeeper{
		options:  options,
		commands: make(chan command),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	keeper.machine = NewMachine(config, keeper.publish)
	keeper.snapshot = keeper.machine.Snapshot()
	return keeper
}

// SetActivityChecker injects the activity source consulted on every tick.
func (keeper *TimeKeeper) SetActivityChecker(checker ActivityChecker) error {
	keeper.mu.Lock()
	if !keeper.launched {
		keeper.machine.SetActivityChecker(checker)
		keeper.mu.Unlock()
		return nil
	}
	keeper.mu.Unlock()
	return keeper.do(func(machine *Machine) { machine.SetActivityChecker(checker) })
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Snapshot returns the state as of the last processed tick or command.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshot
}

// Launch starts the ticking loop. Calling it again is a no-op.
func (keeper *TimeKeeper) Launch() {
	keeper.mu.Lock()
	if keeper.launched || keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.launched = true
	keeper.mu.Unlock()

	go keeper.run()
}

// Close terminates the loop, waiting briefly for an in-flight tick, and
// closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	launched := keeper.launched
	close(keeper.stopCh)
	keeper.mu.Unlock()

	if launched {
		select {
		case <-keeper.doneCh:
		case <-time.After(shutdownWait):
		}
	}

	keeper.mu.Lock()
	for _, ch := range keeper.events {
		close(ch)
	}
	keeper.events = nil
	keeper.mu.Unlock()
}

// Start begins or resumes the countdown.
func (keeper *TimeKeeper) Start() error {
	return keeper.do(func(machine *Machine) { machine.Start() })
}

// Stop halts the countdown, keeping the remaining time.
func (keeper *TimeKeeper) Stop() error {
	return keeper.do(func(machine *Machine) { machine.Stop() })
}

// Toggle starts a stopped timer and stops a running one.
func (keeper *TimeKeeper) Toggle() error {
	return keeper.do(func(machine *Machine) {
		if machine.running {
			machine.Stop()
			return
		}
		machine.Start()
	})
}

// Reset returns to a fresh work session.
func (keeper *TimeKeeper) Reset() error {
	return keeper.do(func(machine *Machine) { machine.Reset() })
}

// SkipBreak ends the current break. It reports whether a break was skipped.
func (keeper *TimeKeeper) SkipBreak() (bool, error) {
	var skipped bool
	err := keeper.do(func(machine *Machine) { skipped = machine.SkipBreak() })
	return skipped, err
}

// UpdateConfig applies new settings to the running machine.
func (keeper *TimeKeeper) UpdateConfig(config model.TimerConfig) error {
	return keeper.do(func(machine *Machine) { machine.UpdateConfig(config) })
}

func (keeper *TimeKeeper) do(cmd command) error {
	keeper.mu.Lock()
	launched, closed := keeper.launched, keeper.closed
	keeper.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if !launched {
		return ErrNotLaunched
	}

	ack := make(chan struct{})
	wrapped := func(machine *Machine) {
		cmd(machine)
		close(ack)
	}

	select {
	case keeper.commands <- wrapped:
	case <-keeper.stopCh:
		return ErrClosed
	}
	<-ack
	return nil
}

func (keeper *TimeKeeper) run() {
	defer close(keeper.doneCh)

	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-keeper.stopCh:
			return
		case cmd := <-keeper.commands:
			cmd(keeper.machine)
			keeper.storeSnapshot()
		case <-ticker.C:
			keeper.machine.Tick()
			keeper.storeSnapshot()
		}
	}
}

func (keeper *TimeKeeper) storeSnapshot() {
	snapshot := keeper.machine.Snapshot()
	keeper.mu.Lock()
	keeper.snapshot = snapshot
	keeper.mu.Unlock()
}

func (keeper *TimeKeeper) publish(event Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

package timekeeper

import (
	"fmt"
	"time"

	"breakreminder/internal/core/model"
)

// Status labels surfaced to the UI.
const (
	StatusReady        = "Ready to start working"
	StatusWorking      = "Working - Stay focused!"
	StatusOnBreak      = "Taking a break - Relax!"
	StatusBreakDue     = "Break time!"
	StatusStopped      = "Timer stopped"
	StatusBreakSkipped = "Break skipped - Ready to work"
)

const tickStep = time.Second

// ActivityChecker reports whether the user is currently at the computer.
type ActivityChecker interface {
	Active() bool
}

// Machine is the session state machine. It is not safe for concurrent use;
// TimeKeeper serializes access to it.
type Machine struct {
	config   model.TimerConfig
	activity ActivityChecker
	now      func() time.Time
	emit     func(Event)

	phase        Phase
	running      bool
	paused       bool
	pauseReason  PauseReason
	remaining    time.Duration
	sessionCount int
	status       string
}

// NewMachine creates a machine in the Idle phase with a full work interval.
func NewMachine(config model.TimerConfig, emit func(Event)) *Machine {
	if emit == nil {
		emit = func(Event) {}
	}
	machine := &Machine{
		config: sanitize(config),
		now:    time.Now,
		emit:   emit,
		phase:  PhaseIdle,
		status: StatusReady,
	}
	machine.remaining = machine.config.Work
	return machine
}

// SetActivityChecker injects the activity source consulted on every tick.
func (machine *Machine) SetActivityChecker(checker ActivityChecker) {
	machine.activity = checker
}

// SetClock overrides the event timestamp source.
func (machine *Machine) SetClock(now func() time.Time) {
	if now != nil {
		machine.now = now
	}
}

// Snapshot returns a copy of the current state.
func (machine *Machine) Snapshot() Snapshot {
	return Snapshot{
		Phase:                  machine.phase,
		Running:                machine.running,
		Paused:                 machine.paused,
		PauseReason:            machine.pauseReason,
		Remaining:              machine.remaining,
		SessionCount:           machine.sessionCount,
		SessionsUntilLongBreak: machine.config.SessionsUntilLongBreak,
		Status:                 machine.status,
	}
}

// Start begins consuming ticks. It is a no-op while already running.
func (machine *Machine) Start() {
	if machine.running {
		return
	}
	machine.running = true
	if machine.phase == PhaseIdle {
		machine.phase = PhaseWorking
	}
	if machine.phase.IsBreak() {
		machine.setStatus(StatusOnBreak)
		return
	}
	machine.setStatus(StatusWorking)
}

// Stop halts ticking and keeps the remaining time.
func (machine *Machine) Stop() {
	machine.running = false
	machine.setStatus(StatusStopped)
}

// Reset returns to the beginning of a fresh work session.
func (machine *Machine) Reset() {
	wasBreak := machine.phase.IsBreak()

	machine.running = false
	machine.paused = false
	machine.pauseReason = PauseNone
	machine.phase = PhaseWorking
	machine.sessionCount = 0
	machine.remaining = machine.config.Work

	if wasBreak {
		machine.emitEvent(Event{Type: EventCloseBreak})
	}
	machine.setStatus(StatusReady)
	machine.emitEvent(Event{Type: EventTick})
}

// SkipBreak ends the current break and prepares the next work session.
// It returns false and changes nothing outside a break phase.
func (machine *Machine) SkipBreak() bool {
	if !machine.phase.IsBreak() {
		return false
	}

	machine.emitEvent(Event{Type: EventCloseBreak})
	machine.running = false
	machine.paused = false
	machine.pauseReason = PauseNone
	machine.phase = PhaseWorking
	machine.remaining = machine.config.Work

	if machine.config.AutoRestartOnSkip {
		machine.Start()
	} else {
		machine.setStatus(StatusBreakSkipped)
	}
	machine.emitEvent(Event{Type: EventTick})
	return true
}

// UpdateConfig applies new settings, keeping the state invariants.
func (machine *Machine) UpdateConfig(config model.TimerConfig) {
	machine.config = sanitize(config)

	if limit := machine.phaseDuration(); machine.remaining > limit {
		machine.remaining = limit
	}
	if machine.sessionCount >= machine.config.SessionsUntilLongBreak {
		machine.sessionCount = machine.config.SessionsUntilLongBreak - 1
	}
	if !machine.config.ActivityDetection && machine.paused {
		machine.paused = false
		machine.pauseReason = PauseNone
		machine.emitEvent(Event{Type: EventPauseChange})
	}
	machine.emitEvent(Event{Type: EventTick})
}

// Tick consumes one second of the current phase unless the user is away.
func (machine *Machine) Tick() {
	if !machine.running || machine.remaining <= 0 {
		return
	}

	if machine.shouldPause() {
		if !machine.paused {
			machine.paused = true
			machine.pauseReason = PauseInactive
			machine.emitEvent(Event{Type: EventPauseChange})
		}
	} else {
		if machine.paused {
			machine.paused = false
			machine.pauseReason = PauseNone
			machine.emitEvent(Event{Type: EventPauseChange})
		}
		machine.remaining -= tickStep
		if machine.remaining < 0 {
			machine.remaining = 0
		}
	}

	machine.emitEvent(Event{Type: EventTick})

	if machine.running && machine.remaining == 0 {
		machine.expire()
	}
}

func (machine *Machine) shouldPause() bool {
	if !machine.config.ActivityDetection || machine.activity == nil {
		return false
	}
	if machine.activity.Active() {
		return false
	}
	return machine.phase == PhaseWorking || machine.config.PauseDuringBreaks
}

func (machine *Machine) expire() {
	machine.running = false
	machine.paused = false
	machine.pauseReason = PauseNone

	if machine.phase.IsBreak() {
		machine.emitEvent(Event{Type: EventCloseBreak})
		machine.phase = PhaseWorking
		machine.remaining = machine.config.Work
		machine.emitEvent(Event{
			Type:    EventNotify,
			Title:   "Break Over!",
			Message: "Time to get back to work!",
		})
		if machine.config.AutoStartWork {
			machine.Start()
		} else {
			machine.setStatus(StatusReady)
		}
		machine.emitEvent(Event{Type: EventTick})
		return
	}

	machine.sessionCount++
	kind := BreakShort
	machine.phase = PhaseShortBreak
	machine.remaining = machine.config.ShortBreak
	if machine.sessionCount >= machine.config.SessionsUntilLongBreak {
		kind = BreakLong
		machine.phase = PhaseLongBreak
		machine.remaining = machine.config.LongBreak
		machine.sessionCount = 0
	}
	minutes := int(machine.remaining / time.Minute)

	machine.emitEvent(Event{
		Type:    EventNotify,
		Title:   "Work Complete!",
		Message: fmt.Sprintf("Time for a %d minute break!", minutes),
	})
	machine.emitEvent(Event{
		Type:         EventShowBreak,
		BreakKind:    kind,
		BreakMinutes: minutes,
	})
	if machine.config.AutoStartBreak {
		machine.Start()
	} else {
		machine.setStatus(StatusBreakDue)
	}
	machine.emitEvent(Event{Type: EventTick})
}

func (machine *Machine) phaseDuration() time.Duration {
	switch machine.phase {
	case PhaseShortBreak:
		return machine.config.ShortBreak
	case PhaseLongBreak:
		return machine.config.LongBreak
	default:
		return machine.config.Work
	}
}

func (machine *Machine) setStatus(status string) {
	machine.status = status
	machine.emitEvent(Event{Type: EventStatus})
}

func (machine *Machine) emitEvent(event Event) {
	event.State = machine.Snapshot()
	event.At = machine.now()
	machine.emit(event)
}

func sanitize(config model.TimerConfig) model.TimerConfig {
	if config.Work <= 0 {
		config.Work = 25 * time.Minute
	}
	if config.ShortBreak <= 0 {
		config.ShortBreak = 5 * time.Minute
	}
	if config.LongBreak <= 0 {
		config.LongBreak = 15 * time.Minute
	}
	if config.SessionsUntilLongBreak < 2 {
		config.SessionsUntilLongBreak = 2
	}
	return config
}

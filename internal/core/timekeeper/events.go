package timekeeper

import (
	"fmt"
	"time"
)

// Phase represents the current TimeKeeper mode.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseWorking    Phase = "working"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// PauseReason explains why ticks are not being consumed.
type PauseReason string

const (
	PauseNone     PauseReason = ""
	PauseInactive PauseReason = "inactive"
)

// BreakKind selects the break presentation.
type BreakKind string

const (
	BreakShort BreakKind = "short"
	BreakLong  BreakKind = "long"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Phase                  Phase
	Running                bool
	Paused                 bool
	PauseReason            PauseReason
	Remaining              time.Duration
	SessionCount           int
	SessionsUntilLongBreak int
	Status                 string
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStatus      EventType = "status"
	EventTick        EventType = "tick"
	EventPauseChange EventType = "pause_change"
	EventNotify      EventType = "notify"
	EventShowBreak   EventType = "show_break"
	EventCloseBreak  EventType = "close_break"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type         EventType
	State        Snapshot
	Title        string
	Message      string
	BreakKind    BreakKind
	BreakMinutes int
	At           time.Time
}

// FormatRemaining renders a countdown as mm:ss. Negative values show 00:00.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

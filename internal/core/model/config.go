package model

import "time"

// TimerConfig contains runtime settings for the session state machine.
type TimerConfig struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration

	SessionsUntilLongBreak int

	AutoStartBreak    bool
	AutoStartWork     bool
	AutoRestartOnSkip bool

	ActivityDetection bool
	PauseDuringBreaks bool
}

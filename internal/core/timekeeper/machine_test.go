package timekeeper

import (
	"testing"
	"time"

	"breakreminder/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivity struct {
	active bool
}

func (activity *fakeActivity) Active() bool {
	return activity.active
}

type recorder struct {
	events []Event
}

func (rec *recorder) emit(event Event) {
	rec.events = append(rec.events, event)
}

func (rec *recorder) ofType(eventType EventType) []Event {
	var matched []Event
	for _, event := range rec.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

func testConfig() model.TimerConfig {
	return model.DefaultSettings().TimerConfig()
}

func newTestMachine(config model.TimerConfig) (*Machine, *recorder) {
	rec := &recorder{}
	machine := NewMachine(config, rec.emit)
	machine.SetClock(func() time.Time { return time.Unix(0, 0) })
	return machine, rec
}

// runOut ticks until the current phase expires.
func runOut(t *testing.T, machine *Machine) {
	t.Helper()
	limit := int(machine.remaining/time.Second) + 1
	phase := machine.phase
	for i := 0; i < limit && machine.phase == phase; i++ {
		machine.Tick()
	}
	require.NotEqual(t, phase, machine.phase, "phase did not expire")
}

func TestNewMachineStartsIdle(t *testing.T) {
	machine, _ := newTestMachine(testConfig())

	state := machine.Snapshot()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.False(t, state.Running)
	assert.Equal(t, 25*time.Minute, state.Remaining)
	assert.Equal(t, StatusReady, state.Status)
}

func TestStartEntersWorkingAndIsIdempotent(t *testing.T) {
	machine, rec := newTestMachine(testConfig())

	machine.Start()
	machine.Start()

	state := machine.Snapshot()
	assert.Equal(t, PhaseWorking, state.Phase)
	assert.True(t, state.Running)
	assert.Equal(t, StatusWorking, state.Status)
	assert.Len(t, rec.ofType(EventStatus), 1)
}

func TestStopPreservesRemaining(t *testing.T) {
	machine, _ := newTestMachine(testConfig())
	machine.Start()
	for i := 0; i < 10; i++ {
		machine.Tick()
	}

	machine.Stop()
	machine.Tick()

	state := machine.Snapshot()
	assert.False(t, state.Running)
	assert.Equal(t, 25*time.Minute-10*time.Second, state.Remaining)
	assert.Equal(t, StatusStopped, state.Status)
}

func TestResetRestoresFreshWorkSession(t *testing.T) {
	for _, workMinutes := range []int{1, 25, 60} {
		settings := model.DefaultSettings()
		settings.WorkMinutes = workMinutes
		machine, _ := newTestMachine(settings.TimerConfig())
		machine.Start()
		runOut(t, machine)

		machine.Reset()

		state := machine.Snapshot()
		assert.Equal(t, PhaseWorking, state.Phase)
		assert.Equal(t, time.Duration(workMinutes)*time.Minute, state.Remaining)
		assert.Zero(t, state.SessionCount)
		assert.False(t, state.Running)
		assert.False(t, state.Paused)
	}
}

func TestResetDuringBreakClosesPresentation(t *testing.T) {
	machine, rec := newTestMachine(testConfig())
	machine.Start()
	runOut(t, machine)
	require.Equal(t, PhaseShortBreak, machine.phase)

	machine.Reset()

	assert.Len(t, rec.ofType(EventCloseBreak), 1)
}

func TestWorkExpiryEntersShortBreak(t *testing.T) {
	machine, rec := newTestMachine(testConfig())
	machine.Start()

	runOut(t, machine)

	state := machine.Snapshot()
	assert.Equal(t, PhaseShortBreak, state.Phase)
	assert.Equal(t, 5*time.Minute, state.Remaining)
	assert.Equal(t, 1, state.SessionCount)
	assert.True(t, state.Running, "auto_start_break keeps the timer running")
	assert.Equal(t, StatusOnBreak, state.Status)

	notifications := rec.ofType(EventNotify)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Work Complete!", notifications[0].Title)
	assert.Equal(t, "Time for a 5 minute break!", notifications[0].Message)

	shows := rec.ofType(EventShowBreak)
	require.Len(t, shows, 1)
	assert.Equal(t, BreakShort, shows[0].BreakKind)
	assert.Equal(t, 5, shows[0].BreakMinutes)
}

func TestBreakExpiryWithoutAutoStartWork(t *testing.T) {
	machine, rec := newTestMachine(testConfig())
	machine.Start()
	runOut(t, machine)

	runOut(t, machine)

	state := machine.Snapshot()
	assert.Equal(t, PhaseWorking, state.Phase)
	assert.Equal(t, 25*time.Minute, state.Remaining)
	assert.False(t, state.Running)
	assert.Equal(t, StatusReady, state.Status)
	assert.Equal(t, 1, state.SessionCount)
	assert.Len(t, rec.ofType(EventCloseBreak), 1)
	assert.Equal(t, "Break Over!", rec.ofType(EventNotify)[1].Title)
}

func TestBreakExpiryWithoutAutoStartBreak(t *testing.T) {
	config := testConfig()
	config.AutoStartBreak = false
	machine, _ := newTestMachine(config)
	machine.Start()

	runOut(t, machine)

	state := machine.Snapshot()
	assert.Equal(t, PhaseShortBreak, state.Phase)
	assert.False(t, state.Running)
	assert.Equal(t, StatusBreakDue, state.Status)
}

func TestLongBreakEveryKthSession(t *testing.T) {
	config := testConfig()
	config.AutoStartWork = true
	machine, rec := newTestMachine(config)
	machine.Start()

	for cycle := 1; cycle <= 8; cycle++ {
		runOut(t, machine)
		state := machine.Snapshot()
		if cycle%4 == 0 {
			assert.Equal(t, PhaseLongBreak, state.Phase, "cycle %d", cycle)
			assert.Equal(t, 15*time.Minute, state.Remaining)
		} else {
			assert.Equal(t, PhaseShortBreak, state.Phase, "cycle %d", cycle)
		}
		assert.GreaterOrEqual(t, state.SessionCount, 0)
		assert.Less(t, state.SessionCount, 4)
		runOut(t, machine)
	}

	shows := rec.ofType(EventShowBreak)
	require.Len(t, shows, 8)
	assert.Equal(t, BreakLong, shows[3].BreakKind)
	assert.Equal(t, BreakLong, shows[7].BreakKind)
}

func TestScenarioFourthWorkCompletionYieldsLongBreak(t *testing.T) {
	settings := model.DefaultSettings()
	settings.WorkMinutes = 25
	settings.BreakMinutes = 5
	settings.SessionsUntilLongBreak = 4
	machine, _ := newTestMachine(settings.TimerConfig())

	var phases []Phase
	for cycle := 0; cycle < 4; cycle++ {
		machine.Start()
		runOut(t, machine)
		phases = append(phases, machine.phase)
		if cycle < 3 {
			assert.Equal(t, cycle+1, machine.sessionCount)
		}
		runOut(t, machine)
	}

	assert.Equal(t, []Phase{PhaseShortBreak, PhaseShortBreak, PhaseShortBreak, PhaseLongBreak}, phases)
	assert.Zero(t, machine.sessionCount)
}

func TestPausedTicksKeepRemaining(t *testing.T) {
	activity := &fakeActivity{active: false}
	machine, rec := newTestMachine(testConfig())
	machine.SetActivityChecker(activity)
	machine.Start()

	for i := 0; i < 30; i++ {
		machine.Tick()
		state := machine.Snapshot()
		assert.True(t, state.Paused)
		assert.Equal(t, PauseInactive, state.PauseReason)
	}

	assert.Equal(t, 25*time.Minute, machine.remaining)
	assert.Len(t, rec.ofType(EventPauseChange), 1)
	assert.Len(t, rec.ofType(EventTick), 30)

	activity.active = true
	machine.Tick()

	assert.False(t, machine.paused)
	assert.Equal(t, 25*time.Minute-time.Second, machine.remaining)
	assert.Len(t, rec.ofType(EventPauseChange), 2)
}

func TestInactivityIgnoredWhenDetectionDisabled(t *testing.T) {
	config := testConfig()
	config.ActivityDetection = false
	machine, _ := newTestMachine(config)
	machine.SetActivityChecker(&fakeActivity{active: false})
	machine.Start()

	machine.Tick()

	assert.False(t, machine.paused)
	assert.Equal(t, 25*time.Minute-time.Second, machine.remaining)
}

func TestBreaksKeepCountingWhileAwayByDefault(t *testing.T) {
	activity := &fakeActivity{active: true}
	machine, _ := newTestMachine(testConfig())
	machine.SetActivityChecker(activity)
	machine.Start()
	runOut(t, machine)
	require.Equal(t, PhaseShortBreak, machine.phase)

	activity.active = false
	machine.Tick()

	assert.False(t, machine.paused)
	assert.Equal(t, 5*time.Minute-time.Second, machine.remaining)
}

func TestPauseDuringBreaks(t *testing.T) {
	config := testConfig()
	config.PauseDuringBreaks = true
	activity := &fakeActivity{active: true}
	machine, _ := newTestMachine(config)
	machine.SetActivityChecker(activity)
	machine.Start()
	runOut(t, machine)

	activity.active = false
	machine.Tick()

	assert.True(t, machine.paused)
	assert.Equal(t, 5*time.Minute, machine.remaining)
}

func TestStartKeepsInactivityPause(t *testing.T) {
	machine, _ := newTestMachine(testConfig())
	machine.SetActivityChecker(&fakeActivity{active: false})
	machine.Start()
	machine.Tick()
	machine.Stop()

	machine.Start()

	assert.True(t, machine.paused)
	assert.Equal(t, PauseInactive, machine.pauseReason)
}

func TestSkipBreakWithAutoRestart(t *testing.T) {
	machine, rec := newTestMachine(testConfig())
	machine.Start()
	runOut(t, machine)
	require.Equal(t, PhaseShortBreak, machine.phase)

	skipped := machine.SkipBreak()

	require.True(t, skipped)
	state := machine.Snapshot()
	assert.Equal(t, PhaseWorking, state.Phase)
	assert.True(t, state.Running)
	assert.Equal(t, 25*time.Minute, state.Remaining)
	assert.Equal(t, StatusWorking, state.Status)
	assert.Len(t, rec.ofType(EventCloseBreak), 1)
}

func TestSkipBreakWithoutAutoRestart(t *testing.T) {
	config := testConfig()
	config.AutoRestartOnSkip = false
	machine, _ := newTestMachine(config)
	machine.Start()
	runOut(t, machine)

	require.True(t, machine.SkipBreak())

	state := machine.Snapshot()
	assert.Equal(t, PhaseWorking, state.Phase)
	assert.False(t, state.Running)
	assert.Equal(t, StatusBreakSkipped, state.Status)
}

func TestSkipBreakOutsideBreakIsNoop(t *testing.T) {
	machine, rec := newTestMachine(testConfig())
	machine.Start()
	machine.Tick()
	before := machine.Snapshot()
	emitted := len(rec.events)

	assert.False(t, machine.SkipBreak())
	assert.Equal(t, before, machine.Snapshot())
	assert.Len(t, rec.events, emitted)
}

func TestUpdateConfigClampsState(t *testing.T) {
	machine, _ := newTestMachine(testConfig())
	machine.Start()
	for cycle := 0; cycle < 3; cycle++ {
		runOut(t, machine)
		machine.SkipBreak()
	}
	require.Equal(t, 3, machine.sessionCount)

	config := testConfig()
	config.Work = 10 * time.Minute
	config.SessionsUntilLongBreak = 2
	machine.UpdateConfig(config)

	assert.Equal(t, 10*time.Minute, machine.remaining)
	assert.Equal(t, 1, machine.sessionCount)
}

func TestUpdateConfigClearsPauseWhenDetectionDisabled(t *testing.T) {
	machine, _ := newTestMachine(testConfig())
	machine.SetActivityChecker(&fakeActivity{active: false})
	machine.Start()
	machine.Tick()
	require.True(t, machine.paused)

	config := testConfig()
	config.ActivityDetection = false
	machine.UpdateConfig(config)

	assert.False(t, machine.paused)
	assert.Equal(t, PauseNone, machine.pauseReason)
}

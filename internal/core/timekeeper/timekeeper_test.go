package timekeeper

import (
	"testing"
	"time"

	"breakreminder/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeeper(t *testing.T, config model.TimerConfig, tick time.Duration) *TimeKeeper {
	t.Helper()
	keeper := New(config, Config{TickInterval: tick})
	t.Cleanup(keeper.Close)
	return keeper
}

func TestCommandsBeforeLaunchFail(t *testing.T) {
	keeper := newTestKeeper(t, testConfig(), time.Hour)

	assert.ErrorIs(t, keeper.Start(), ErrNotLaunched)
	assert.Equal(t, PhaseIdle, keeper.Snapshot().Phase)
}

func TestCommandsAreAppliedOnLoop(t *testing.T) {
	keeper := newTestKeeper(t, testConfig(), time.Hour)
	keeper.Launch()

	require.NoError(t, keeper.Start())
	state := keeper.Snapshot()
	assert.Equal(t, PhaseWorking, state.Phase)
	assert.True(t, state.Running)

	require.NoError(t, keeper.Toggle())
	assert.False(t, keeper.Snapshot().Running)

	require.NoError(t, keeper.Toggle())
	assert.True(t, keeper.Snapshot().Running)

	require.NoError(t, keeper.Reset())
	state = keeper.Snapshot()
	assert.False(t, state.Running)
	assert.Equal(t, 25*time.Minute, state.Remaining)

	skipped, err := keeper.SkipBreak()
	require.NoError(t, err)
	assert.False(t, skipped)
}

func TestTickerDecrementsRemaining(t *testing.T) {
	keeper := newTestKeeper(t, testConfig(), 5*time.Millisecond)
	events := keeper.Subscribe(64)
	keeper.Launch()
	require.NoError(t, keeper.Start())

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Type == EventTick && event.State.Remaining <= 25*time.Minute-3*time.Second {
				assert.True(t, event.State.Running)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for ticks")
		}
	}
}

func TestUpdateConfigThroughKeeper(t *testing.T) {
	keeper := newTestKeeper(t, testConfig(), time.Hour)
	keeper.Launch()

	config := testConfig()
	config.Work = 5 * time.Minute
	require.NoError(t, keeper.UpdateConfig(config))

	assert.Equal(t, 5*time.Minute, keeper.Snapshot().Remaining)
}

func TestSetActivityCheckerAfterLaunch(t *testing.T) {
	keeper := newTestKeeper(t, testConfig(), 5*time.Millisecond)
	keeper.Launch()
	require.NoError(t, keeper.SetActivityChecker(&fakeActivity{active: false}))
	require.NoError(t, keeper.Start())

	assert.Eventually(t, func() bool {
		return keeper.Snapshot().Paused
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 25*time.Minute, keeper.Snapshot().Remaining)
}

func TestCloseStopsLoopAndObservers(t *testing.T) {
	keeper := New(testConfig(), Config{TickInterval: 5 * time.Millisecond})
	events := keeper.Subscribe(1)
	keeper.Launch()
	require.NoError(t, keeper.Start())

	keeper.Close()
	keeper.Close()

	assert.ErrorIs(t, keeper.Start(), ErrClosed)
	for range events {
	}
	_, open := <-keeper.Subscribe(1)
	assert.False(t, open)
}

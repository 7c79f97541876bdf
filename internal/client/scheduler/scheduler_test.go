package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/sync"
	"github.com/iudanet/quotesync/internal/merge"
)

const waitFor = 2 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newRunner возвращает мок, у которого проход завершается сразу
func newRunner() *RunnerMock {
	return &RunnerMock{
		RunPassFunc: func(ctx context.Context, policy merge.Policy) *sync.PassResult {
			return &sync.PassResult{Policy: policy}
		},
		ResolveOneFunc: func(ctx context.Context, id string, choice sync.Choice) error {
			return nil
		},
		ResolveAllFunc: func(ctx context.Context, choice sync.Choice) *sync.ResolutionResult {
			return &sync.ResolutionResult{Choice: choice}
		},
		ClearConflictsFunc: func(ctx context.Context) (*sync.ResolutionResult, error) {
			return &sync.ResolutionResult{Choice: sync.Discard}, nil
		},
		ConflictsFunc: func() conflicts.State {
			return conflicts.State{}
		},
	}
}

// blockingRunner возвращает мок, чей проход ждет закрытия release
func blockingRunner() (runner *RunnerMock, started chan struct{}, release chan struct{}) {
	started = make(chan struct{}, 16)
	release = make(chan struct{})
	runner = newRunner()
	runner.RunPassFunc = func(ctx context.Context, policy merge.Policy) *sync.PassResult {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return &sync.PassResult{Policy: policy}
	}
	return runner, started, release
}

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for signal")
	}
}

func TestTriggerNow_RunsPass(t *testing.T) {
	runner := newRunner()
	s := New(runner, discardLogger())
	defer s.Close()

	result, err := s.TriggerNow(context.Background(), merge.PolicyManual)

	require.NoError(t, err)
	assert.Equal(t, merge.PolicyManual, result.Policy)
	require.Len(t, runner.RunPassCalls(), 1)
	assert.Equal(t, merge.PolicyManual, runner.RunPassCalls()[0].Policy)
	assert.Equal(t, StateIdle, s.State())
}

func TestTriggerNow_BackToBackReturnsBusy(t *testing.T) {
	runner, started, release := blockingRunner()
	s := New(runner, discardLogger())
	defer s.Close()

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.TriggerNow(context.Background(), merge.PolicyAutoRemoteWins)
		firstDone <- err
	}()
	waitSignal(t, started)
	assert.Equal(t, StateRunning, s.State())

	// Второй вызов до завершения первого отклоняется сразу
	result, err := s.TriggerNow(context.Background(), merge.PolicyAutoRemoteWins)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Nil(t, result)

	close(release)
	require.NoError(t, <-firstDone)

	assert.Len(t, runner.RunPassCalls(), 1, "exactly one pass executed")
	assert.Equal(t, StateIdle, s.State())
}

func TestResolutionIsExclusiveWithPass(t *testing.T) {
	runner, started, release := blockingRunner()
	s := New(runner, discardLogger())
	defer s.Close()

	go func() {
		_, _ = s.TriggerNow(context.Background(), merge.PolicyManual)
	}()
	waitSignal(t, started)

	assert.ErrorIs(t, s.ResolveOne(context.Background(), "a", sync.KeepRemote), ErrBusy)
	_, err := s.ResolveAll(context.Background(), sync.KeepLocal)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.ClearConflicts(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	assert.Empty(t, runner.ResolveOneCalls())
	assert.Empty(t, runner.ResolveAllCalls())
	assert.Empty(t, runner.ClearConflictsCalls())

	close(release)
	require.Eventually(t, func() bool { return s.State() == StateIdle }, waitFor, time.Millisecond)

	assert.NoError(t, s.ResolveOne(context.Background(), "a", sync.KeepRemote))
}

func TestResolveOne_PassesErrorThrough(t *testing.T) {
	runner := newRunner()
	runner.ResolveOneFunc = func(ctx context.Context, id string, choice sync.Choice) error {
		return conflicts.ErrNotFound
	}

	resolutions := make(chan *sync.ResolutionResult, 1)
	observer := &ObserverMock{
		OnResolutionFunc: func(result *sync.ResolutionResult, state conflicts.State) {
			resolutions <- result
		},
	}
	s := New(runner, discardLogger(), WithObserver(observer))
	defer s.Close()

	err := s.ResolveOne(context.Background(), "missing", sync.KeepLocal)
	assert.ErrorIs(t, err, conflicts.ErrNotFound)

	select {
	case r := <-resolutions:
		require.Len(t, r.Failed, 1)
		assert.Equal(t, "missing", r.Failed[0].ID)
		assert.Empty(t, r.Resolved)
	case <-time.After(waitFor):
		t.Fatal("observer not notified")
	}
}

func TestClearConflicts_Error(t *testing.T) {
	runner := newRunner()
	runner.ClearConflictsFunc = func(ctx context.Context) (*sync.ResolutionResult, error) {
		return nil, errors.New("storage fault")
	}
	s := New(runner, discardLogger())
	defer s.Close()

	_, err := s.ClearConflicts(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StateIdle, s.State())
}

func TestObserversReceivePassAndResolution(t *testing.T) {
	runner := newRunner()
	state := conflicts.State{Conflicts: nil}
	runner.ConflictsFunc = func() conflicts.State { return state }

	passes := make(chan *sync.PassResult, 4)
	resolutions := make(chan *sync.ResolutionResult, 4)
	observer := &ObserverMock{
		OnPassFunc: func(result *sync.PassResult, _ conflicts.State) {
			passes <- result
		},
		OnResolutionFunc: func(result *sync.ResolutionResult, _ conflicts.State) {
			resolutions <- result
		},
	}

	s := New(runner, discardLogger())
	s.Subscribe(observer)

	_, err := s.TriggerNow(context.Background(), merge.PolicyManual)
	require.NoError(t, err)
	_, err = s.ResolveAll(context.Background(), sync.KeepRemote)
	require.NoError(t, err)
	_, err = s.ClearConflicts(context.Background())
	require.NoError(t, err)

	// Close доставляет оставшиеся события
	s.Close()

	assert.Len(t, passes, 1)
	assert.Len(t, resolutions, 2)
	assert.Len(t, observer.OnPassCalls(), 1)
	assert.Len(t, observer.OnResolutionCalls(), 2)
}

func TestSlowObserverDoesNotBlockScheduler(t *testing.T) {
	runner := newRunner()
	unblock := make(chan struct{})
	observer := &ObserverMock{
		OnPassFunc: func(*sync.PassResult, conflicts.State) {
			<-unblock
		},
	}
	s := New(runner, discardLogger(), WithObserver(observer))

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			_, err := s.TriggerNow(context.Background(), merge.PolicyAutoRemoteWins)
			assert.NoError(t, err)
		}
		close(done)
	}()

	waitSignal(t, done)
	assert.Len(t, runner.RunPassCalls(), 5)

	close(unblock)
	s.Close()
	assert.Len(t, observer.OnPassCalls(), 5)
}

func TestPanickingObserverIsIsolated(t *testing.T) {
	runner := newRunner()
	var delivered atomic.Int32
	bad := &ObserverMock{
		OnPassFunc: func(*sync.PassResult, conflicts.State) { panic("boom") },
	}
	good := &ObserverMock{
		OnPassFunc: func(*sync.PassResult, conflicts.State) { delivered.Add(1) },
	}
	s := New(runner, discardLogger(), WithObserver(bad), WithObserver(good))

	_, err := s.TriggerNow(context.Background(), merge.PolicyManual)
	require.NoError(t, err)
	s.Close()

	assert.Equal(t, int32(1), delivered.Load())
}

func TestStart_InvalidInterval(t *testing.T) {
	s := New(newRunner(), discardLogger())
	defer s.Close()

	assert.ErrorIs(t, s.Start(0), ErrInvalidInterval)
	assert.ErrorIs(t, s.Start(-time.Second), ErrInvalidInterval)
	assert.False(t, s.Started())
}

func TestStart_Idempotent(t *testing.T) {
	s := New(newRunner(), discardLogger())
	defer s.Close()

	require.NoError(t, s.Start(time.Hour))
	done := s.done

	require.NoError(t, s.Start(time.Hour))
	assert.Equal(t, done, s.done, "second Start does not create another timer")
	assert.True(t, s.Started())

	s.Stop()
	assert.False(t, s.Started())
}

func TestStop_NotStartedIsNoop(t *testing.T) {
	s := New(newRunner(), discardLogger())
	defer s.Close()

	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}

func TestStart_TicksRunPasses(t *testing.T) {
	runner := newRunner()
	s := New(runner, discardLogger(), WithPolicy(merge.PolicyManual))
	defer s.Close()

	require.NoError(t, s.Start(5*time.Millisecond))
	require.Eventually(t, func() bool {
		return len(runner.RunPassCalls()) >= 2
	}, waitFor, time.Millisecond)
	s.Stop()

	calls := len(runner.RunPassCalls())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, len(runner.RunPassCalls()), "no passes after Stop")
	assert.Equal(t, merge.PolicyManual, runner.RunPassCalls()[0].Policy)
}

func TestStop_WaitsForInFlightPass(t *testing.T) {
	runner, started, release := blockingRunner()
	var completed atomic.Bool
	inner := runner.RunPassFunc
	runner.RunPassFunc = func(ctx context.Context, policy merge.Policy) *sync.PassResult {
		r := inner(ctx, policy)
		completed.Store(true)
		return r
	}

	s := New(runner, discardLogger())
	defer s.Close()

	require.NoError(t, s.Start(time.Millisecond))
	waitSignal(t, started)

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a pass was in flight")
	case <-time.After(30 * time.Millisecond):
	}

	close(release)
	waitSignal(t, stopped)
	assert.True(t, completed.Load(), "in-flight pass ran to completion")
	assert.Len(t, runner.RunPassCalls(), 1)
}

func TestTimerSkipsWhenBusy(t *testing.T) {
	runner, started, release := blockingRunner()
	s := New(runner, discardLogger())
	defer s.Close()

	go func() {
		_, _ = s.TriggerNow(context.Background(), merge.PolicyAutoRemoteWins)
	}()
	waitSignal(t, started)

	// Тики во время ручного прохода пропускаются
	require.NoError(t, s.Start(2*time.Millisecond))
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, runner.RunPassCalls(), 1)

	close(release)
	s.Stop()
}

func TestTimerReportsFailedPass(t *testing.T) {
	runner := newRunner()
	passErr := errors.New("remote unavailable")
	runner.RunPassFunc = func(ctx context.Context, policy merge.Policy) *sync.PassResult {
		return &sync.PassResult{Policy: policy, Err: passErr}
	}

	failures := make(chan error, 16)
	observer := &ObserverMock{
		OnPassFunc: func(result *sync.PassResult, _ conflicts.State) {
			select {
			case failures <- result.Err:
			default:
			}
		},
	}
	s := New(runner, discardLogger(), WithObserver(observer))
	defer s.Close()

	require.NoError(t, s.Start(2*time.Millisecond))

	select {
	case err := <-failures:
		assert.ErrorIs(t, err, passErr)
	case <-time.After(waitFor):
		t.Fatal("failed pass not reported")
	}
	s.Stop()
}

func TestTimerRecoversFromPanic(t *testing.T) {
	runner := newRunner()
	var calls atomic.Int32
	runner.RunPassFunc = func(ctx context.Context, policy merge.Policy) *sync.PassResult {
		if calls.Add(1) == 1 {
			panic("unexpected")
		}
		return &sync.PassResult{Policy: policy}
	}

	failures := make(chan error, 16)
	observer := &ObserverMock{
		OnPassFunc: func(result *sync.PassResult, _ conflicts.State) {
			select {
			case failures <- result.Err:
			default:
			}
		},
	}
	s := New(runner, discardLogger(), WithObserver(observer))
	defer s.Close()

	require.NoError(t, s.Start(2*time.Millisecond))

	select {
	case err := <-failures:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panicked")
	case <-time.After(waitFor):
		t.Fatal("panic not reported")
	}

	// Планировщик продолжает работать после паники
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, waitFor, time.Millisecond)
	s.Stop()
	assert.Equal(t, StateIdle, s.State())
}

func TestSetPolicy(t *testing.T) {
	s := New(newRunner(), discardLogger())
	defer s.Close()

	assert.Equal(t, merge.PolicyAutoRemoteWins, s.Policy())
	s.SetPolicy(merge.PolicyManual)
	assert.Equal(t, merge.PolicyManual, s.Policy())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
}

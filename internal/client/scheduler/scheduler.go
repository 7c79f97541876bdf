// Package scheduler drives sync passes periodically and on demand, and makes
// sure that passes and conflict resolutions never overlap.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/sync"
	"github.com/iudanet/quotesync/internal/merge"
)

var (
	// ErrBusy возвращается, если проход или разрешение конфликта уже выполняется.
	// Это не ошибка: вызывающий повторяет попытку позже.
	ErrBusy = errors.New("sync pass already in progress")

	// ErrInvalidInterval возвращается Start для неположительного интервала
	ErrInvalidInterval = errors.New("sync interval must be positive")
)

// State состояние планировщика
type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Scheduler управляет запуском проходов синхронизации.
// В каждый момент выполняется не больше одного прохода или разрешения.
type Scheduler struct {
	runner  Runner
	logger  *slog.Logger
	mailbox *mailbox

	stop chan struct{} // закрывается Stop; nil, если таймер не запущен
	done chan struct{} // закрывается горутиной таймера при выходе

	state  atomic.Int32
	policy atomic.Int32
	mu     gosync.Mutex // защищает stop/done
}

// Option настраивает Scheduler
type Option func(*Scheduler)

// WithPolicy задает политику для проходов по таймеру
func WithPolicy(p merge.Policy) Option {
	return func(s *Scheduler) {
		s.policy.Store(int32(p))
	}
}

// WithObserver регистрирует наблюдателя
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		s.mailbox.subscribe(o)
	}
}

// New creates a scheduler. Call Close to release the delivery goroutine.
func New(runner Runner, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner:  runner,
		logger:  logger,
		mailbox: newMailbox(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer after construction
func (s *Scheduler) Subscribe(o Observer) {
	s.mailbox.subscribe(o)
}

// State returns whether a pass or resolution is in flight
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Policy returns the policy used by timer-triggered passes
func (s *Scheduler) Policy() merge.Policy {
	return merge.Policy(s.policy.Load())
}

// SetPolicy changes the policy used by timer-triggered passes
func (s *Scheduler) SetPolicy(p merge.Policy) {
	s.policy.Store(int32(p))
}

// Start запускает периодические проходы. Повторный вызов ничего не делает.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(interval, s.stop, s.done)

	s.logger.Info("Scheduler started", "interval", interval, "policy", s.Policy())
	return nil
}

// Stop останавливает таймер и ждет выхода его горутины.
// Выполняющийся проход не прерывается и завершается до возврата из Stop.
// Без предварительного Start ничего не делает.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stop == nil {
		s.mu.Unlock()
		return
	}
	close(s.stop)
	done := s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	<-done
	s.logger.Info("Scheduler stopped")
}

// Started reports whether the timer is running
func (s *Scheduler) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stop != nil
}

// Close stops the timer and delivers pending observer notifications
func (s *Scheduler) Close() {
	s.Stop()
	s.mailbox.close()
}

// TriggerNow выполняет проход немедленно.
// Если проход или разрешение уже выполняется, сразу возвращает ErrBusy.
// Ошибки самого прохода возвращаются в PassResult.Err.
func (s *Scheduler) TriggerNow(ctx context.Context, policy merge.Policy) (*sync.PassResult, error) {
	if !s.acquire() {
		return nil, ErrBusy
	}
	defer s.release()

	result := s.runner.RunPass(ctx, policy)
	s.mailbox.post(event{pass: result, state: s.runner.Conflicts()})
	return result, nil
}

// ResolveOne разрешает один конфликт под тем же замком, что и проходы
func (s *Scheduler) ResolveOne(ctx context.Context, id string, choice sync.Choice) error {
	if !s.acquire() {
		return ErrBusy
	}
	defer s.release()

	err := s.runner.ResolveOne(ctx, id, choice)

	result := &sync.ResolutionResult{Choice: choice}
	if err != nil {
		result.Failed = []sync.ResolutionFailure{{ID: id, Err: err}}
	} else {
		result.Resolved = []string{id}
	}
	s.mailbox.post(event{resolution: result, state: s.runner.Conflicts()})

	return err
}

// ResolveAll применяет один выбор ко всем конфликтам
func (s *Scheduler) ResolveAll(ctx context.Context, choice sync.Choice) (*sync.ResolutionResult, error) {
	if !s.acquire() {
		return nil, ErrBusy
	}
	defer s.release()

	result := s.runner.ResolveAll(ctx, choice)
	s.mailbox.post(event{resolution: result, state: s.runner.Conflicts()})
	return result, nil
}

// ClearConflicts отбрасывает все конфликты
func (s *Scheduler) ClearConflicts(ctx context.Context) (*sync.ResolutionResult, error) {
	if !s.acquire() {
		return nil, ErrBusy
	}
	defer s.release()

	result, err := s.runner.ClearConflicts(ctx)
	if err != nil {
		return nil, err
	}
	s.mailbox.post(event{resolution: result, state: s.runner.Conflicts()})
	return result, nil
}

// Conflicts returns a snapshot of the conflict queue
func (s *Scheduler) Conflicts() conflicts.State {
	return s.runner.Conflicts()
}

func (s *Scheduler) acquire() bool {
	return s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning))
}

func (s *Scheduler) release() {
	s.state.Store(int32(StateIdle))
}

func (s *Scheduler) loop(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick выполняет проход по таймеру. Busy и неудачные проходы только логируются.
func (s *Scheduler) tick() {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("sync pass panicked: %v", r)
			s.logger.Error("Scheduled sync pass failed", "error", err)
			s.mailbox.post(event{pass: &sync.PassResult{Policy: s.Policy(), Err: err}, state: s.runner.Conflicts()})
		}
	}()

	result, err := s.TriggerNow(context.Background(), s.Policy())
	if errors.Is(err, ErrBusy) {
		s.logger.Debug("Scheduled sync skipped", "reason", err)
		return
	}
	if result.Failed() {
		s.logger.Warn("Scheduled sync pass failed", "error", result.Err)
	}
}

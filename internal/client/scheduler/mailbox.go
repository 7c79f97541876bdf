package scheduler

import (
	"fmt"
	"log/slog"
	gosync "sync"

	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/sync"
)

// event одно уведомление для наблюдателей
type event struct {
	pass       *sync.PassResult
	resolution *sync.ResolutionResult
	state      conflicts.State
}

// mailbox неограниченная очередь событий с одной горутиной доставки.
// post никогда не блокируется на наблюдателях.
type mailbox struct {
	logger    *slog.Logger
	notify    chan struct{}
	done      chan struct{}
	queue     []event
	observers []Observer
	mu        gosync.Mutex
	closed    bool
}

func (e event) kind() string {
	switch {
	case e.pass != nil:
		return "pass"
	case e.resolution != nil:
		return "resolution"
	default:
		return "unknown"
	}
}

func newMailbox(logger *slog.Logger) *mailbox {
	m := &mailbox{
		logger: logger,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go m.run()
	return m
}

func (m *mailbox) subscribe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observers = append(m.observers, o)
}

func (m *mailbox) post(e event) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.logger.Debug("Observer event dropped after close", "kind", e.kind())
		return
	}
	m.queue = append(m.queue, e)
	select {
	case m.notify <- struct{}{}:
	default:
	}
	m.mu.Unlock()
}

// close доставляет уже поставленные события и останавливает горутину
func (m *mailbox) close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		<-m.done
		return
	}
	m.closed = true
	close(m.notify)
	m.mu.Unlock()

	<-m.done
}

func (m *mailbox) run() {
	defer close(m.done)

	for range m.notify {
		m.drain()
	}
	m.drain()
}

func (m *mailbox) drain() {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			return
		}
		e := m.queue[0]
		m.queue = m.queue[1:]
		observers := append([]Observer(nil), m.observers...)
		m.mu.Unlock()

		for _, o := range observers {
			m.deliver(o, e)
		}
	}
}

func (m *mailbox) deliver(o Observer, e event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Observer panicked", "error", fmt.Sprint(r))
		}
	}()

	switch {
	case e.pass != nil:
		o.OnPass(e.pass, e.state)
	case e.resolution != nil:
		o.OnResolution(e.resolution, e.state)
	}
}

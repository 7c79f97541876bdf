// Package clock выдает метки времени для локальных изменений записей.
package clock

import (
	"sync"
	"time"
)

// Clock выдает монотонно неубывающие метки времени в unix миллисекундах.
// Если системное время отстало (NTP, ручная правка), метка все равно
// строго больше предыдущей выданной.
type Clock struct {
	now  func() time.Time // источник физического времени
	last int64            // последняя выданная метка
	mu   sync.Mutex
}

// New создает часы, работающие от time.Now.
func New() *Clock {
	return &Clock{now: time.Now}
}

// NewWithSource создает часы с заданным источником времени.
// Используется в тестах.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Tick возвращает метку для нового локального изменения.
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UnixMilli()
	if ts <= c.last {
		ts = c.last + 1
	}
	c.last = ts
	return ts
}

// Observe учитывает метку, пришедшую извне (с сервера или из хранилища),
// чтобы следующий Tick был строго больше нее.
func (c *Clock) Observe(ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ts > c.last {
		c.last = ts
	}
}

// Last возвращает последнюю выданную или учтенную метку.
func (c *Clock) Last() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}

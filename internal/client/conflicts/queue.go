// Package conflicts holds divergent records awaiting manual resolution.
package conflicts

import (
	"errors"
	"sync"

	"github.com/iudanet/quotesync/internal/models"
)

// ErrNotFound возвращается, если для ID нет ожидающего конфликта
var ErrNotFound = errors.New("conflict not found")

// State снимок очереди для наблюдателей и персистентности
type State struct {
	Conflicts []models.Conflict `json:"conflicts"`
}

// Len returns the number of pending conflicts in the snapshot.
func (s State) Len() int {
	return len(s.Conflicts)
}

// IDs returns the conflict IDs in queue order.
func (s State) IDs() []string {
	ids := make([]string, 0, len(s.Conflicts))
	for _, c := range s.Conflicts {
		ids = append(ids, c.ID())
	}
	return ids
}

// Queue упорядоченное отображение ID -> конфликт.
// Порядок обхода совпадает с порядком первой постановки в очередь.
// ID не может встречаться в очереди дважды.
type Queue struct {
	items map[string]models.Conflict // map[id]conflict
	order []string                   // ID в порядке постановки
	mu    sync.RWMutex
}

// NewQueue создает пустую очередь конфликтов.
func NewQueue() *Queue {
	return &Queue{
		items: make(map[string]models.Conflict),
	}
}

// Enqueue добавляет конфликт в конец очереди.
// Если для ID уже есть конфликт, он заменяется на месте (позиция сохраняется).
// Возвращает true, если конфликт был заменен.
func (q *Queue) Enqueue(c models.Conflict) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := c.ID()
	_, exists := q.items[id]
	q.items[id] = c
	if !exists {
		q.order = append(q.order, id)
	}
	return exists
}

// Get возвращает конфликт по ID.
func (q *Queue) Get(id string) (models.Conflict, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	c, ok := q.items[id]
	if !ok {
		return models.Conflict{}, ErrNotFound
	}
	return c, nil
}

// Contains проверяет наличие конфликта с заданным ID.
func (q *Queue) Contains(id string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	_, ok := q.items[id]
	return ok
}

// Remove удаляет конфликт из очереди.
// Для отсутствующего ID возвращает ErrNotFound, очередь не меняется.
func (q *Queue) Remove(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.items[id]; !ok {
		return ErrNotFound
	}
	delete(q.items, id)
	for i, oid := range q.order {
		if oid == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	return nil
}

// List возвращает конфликты в порядке очереди.
func (q *Queue) List() []models.Conflict {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return q.listLocked()
}

// Len возвращает количество ожидающих конфликтов.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return len(q.order)
}

// Clear удаляет все конфликты без их разрешения.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = make(map[string]models.Conflict)
	q.order = nil
}

// Snapshot возвращает копию текущего состояния очереди.
func (q *Queue) Snapshot() State {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return State{Conflicts: q.listLocked()}
}

// Load заменяет содержимое очереди списком конфликтов (например, из хранилища).
// Дубликаты ID схлопываются по правилам Enqueue.
func (q *Queue) Load(list []models.Conflict) {
	q.mu.Lock()
	q.items = make(map[string]models.Conflict, len(list))
	q.order = nil
	q.mu.Unlock()

	for _, c := range list {
		q.Enqueue(c)
	}
}

func (q *Queue) listLocked() []models.Conflict {
	out := make([]models.Conflict, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, q.items[id])
	}
	return out
}

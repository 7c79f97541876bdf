package sync

import (
	"context"
	"fmt"

	"github.com/iudanet/quotesync/internal/client/storage"
	"github.com/iudanet/quotesync/internal/models"
)

// ResolveOne разрешает один конфликт.
//
// KeepRemote перезаписывает локальную запись сохраненной серверной версией.
// KeepLocal отправляет сохраненную локальную версию на сервер.
// Конфликт удаляется из очереди только после успешного применения;
// при ошибке он остается в очереди. Неизвестный id дает conflicts.ErrNotFound.
func (s *Service) ResolveOne(ctx context.Context, id string, choice Choice) error {
	c, err := s.queue.Get(id)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", id, err)
	}

	if err := s.apply(ctx, c, choice); err != nil {
		s.logger.Warn("Failed to resolve conflict", "id", id, "choice", choice, "error", err)
		return fmt.Errorf("resolve %s: %w", id, err)
	}

	if err := s.dequeue(ctx, id); err != nil {
		return fmt.Errorf("resolve %s: %w", id, err)
	}

	s.logger.Info("Conflict resolved", "id", id, "choice", choice)
	return nil
}

// ResolveAll применяет один и тот же выбор ко всем конфликтам в порядке очереди.
// Каждый конфликт разрешается полностью или остается в очереди;
// ошибка одного не останавливает остальные.
func (s *Service) ResolveAll(ctx context.Context, choice Choice) *ResolutionResult {
	result := &ResolutionResult{Choice: choice}

	for _, c := range s.queue.List() {
		if err := s.ResolveOne(ctx, c.ID(), choice); err != nil {
			result.Failed = append(result.Failed, ResolutionFailure{ID: c.ID(), Err: err})
			continue
		}
		result.Resolved = append(result.Resolved, c.ID())
	}

	s.logger.Info("Bulk resolution completed",
		"choice", choice,
		"resolved", len(result.Resolved),
		"failed", len(result.Failed))

	return result
}

// ClearConflicts discards every queued conflict without applying it
func (s *Service) ClearConflicts(ctx context.Context) (*ResolutionResult, error) {
	n := s.queue.Len()
	if err := s.conflictStorage.SaveConflicts(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: save conflicts: %w", storage.ErrStorageFault, err)
	}
	s.queue.Clear()

	s.logger.Info("Conflict queue cleared", "discarded", n)
	return &ResolutionResult{Choice: Discard, Cleared: n}, nil
}

func (s *Service) apply(ctx context.Context, c models.Conflict, choice Choice) error {
	switch choice {
	case KeepRemote:
		local, err := s.records.LoadRecords(ctx)
		if err != nil {
			return fmt.Errorf("%w: load local records: %w", storage.ErrStorageFault, err)
		}
		local[c.ID()] = c.Remote
		if err := s.records.SaveRecords(ctx, local); err != nil {
			return fmt.Errorf("%w: save local records: %w", storage.ErrStorageFault, err)
		}
		return nil

	case KeepLocal:
		// Локальная коллекция уже содержит нужную версию
		_, err := s.apiClient.Upsert(ctx, c.Local)
		return err

	default:
		return fmt.Errorf("%w: %s", ErrUnknownChoice, choice)
	}
}

// dequeue сохраняет очередь без id, затем удаляет его в памяти
func (s *Service) dequeue(ctx context.Context, id string) error {
	list := s.queue.List()
	remaining := make([]models.Conflict, 0, len(list))
	for _, c := range list {
		if c.ID() != id {
			remaining = append(remaining, c)
		}
	}

	if err := s.conflictStorage.SaveConflicts(ctx, remaining); err != nil {
		return fmt.Errorf("%w: save conflicts: %w", storage.ErrStorageFault, err)
	}
	return s.queue.Remove(id)
}

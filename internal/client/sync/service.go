// Package sync reconciles the local replica with the remote replica and
// resolves the conflicts that reconciliation leaves behind.
//
// Service is not safe for concurrent passes or resolutions; callers serialize
// access through the scheduler.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpClient "github.com/iudanet/quotesync/internal/client/api"
	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/storage"
	"github.com/iudanet/quotesync/internal/merge"
	"github.com/iudanet/quotesync/internal/models"
	"github.com/iudanet/quotesync/pkg/api"
)

// Service handles synchronization between client and server
type Service struct {
	apiClient       httpClient.ClientAPI
	records         storage.RecordStorage
	conflictStorage storage.ConflictStorage
	passStorage     storage.PassStorage
	queue           *conflicts.Queue
	logger          *slog.Logger
	now             func() time.Time
}

// NewService creates a new sync service with an empty conflict queue.
// Call Restore to load the persisted queue.
func NewService(
	apiClient httpClient.ClientAPI,
	records storage.RecordStorage,
	conflictStorage storage.ConflictStorage,
	passStorage storage.PassStorage,
	logger *slog.Logger,
) *Service {
	return &Service{
		apiClient:       apiClient,
		records:         records,
		conflictStorage: conflictStorage,
		passStorage:     passStorage,
		queue:           conflicts.NewQueue(),
		logger:          logger,
		now:             time.Now,
	}
}

// Restore loads the persisted conflict queue into memory
func (s *Service) Restore(ctx context.Context) error {
	list, err := s.conflictStorage.LoadConflicts(ctx)
	if err != nil {
		return fmt.Errorf("%w: load conflicts: %w", storage.ErrStorageFault, err)
	}
	s.queue.Load(list)
	s.logger.Debug("Conflict queue restored", "pending", s.queue.Len())
	return nil
}

// Conflicts returns a snapshot of the conflict queue
func (s *Service) Conflicts() conflicts.State {
	return s.queue.Snapshot()
}

// RunPass performs one sync pass:
// 1. Fetches the remote snapshot and loads the local snapshot
// 2. Classifies every record with merge.Classify
// 3. Commits the updated local collection, the conflict queue and the sync
//    time in one storage transaction
// 4. Pushes staged records to the server one by one
//
// A fetch or storage failure aborts the pass before anything is written:
// the replica, the queue and the last sync time stay as they were.
// A push failure is recorded on its action; the record stays local-only or
// newer and is pushed again on the next pass.
func (s *Service) RunPass(ctx context.Context, policy merge.Policy) *PassResult {
	result := &PassResult{Policy: policy, StartedAt: s.now()}
	defer func() {
		result.FinishedAt = s.now()
		result.Conflicts = s.queue.List()
	}()

	s.logger.Info("Starting sync pass", "policy", policy)

	remoteList, err := s.apiClient.FetchAll(ctx)
	if err != nil {
		result.Err = fmt.Errorf("fetch remote snapshot: %w", err)
		s.logger.Warn("Sync pass aborted", "error", result.Err)
		return result
	}

	local, err := s.records.LoadRecords(ctx)
	if err != nil {
		result.Err = fmt.Errorf("%w: load local records: %w", storage.ErrStorageFault, err)
		s.logger.Error("Sync pass aborted", "error", result.Err)
		return result
	}

	remote := models.NewCollection(remoteList...)
	plan := merge.Classify(local, remote, policy)

	s.logger.Debug("Classified records",
		"local", len(local),
		"remote", len(remote),
		"actions", len(plan.Actions),
		"conflicts", len(plan.Conflicts),
		"converged", len(plan.Converged))

	next, newConflicts, pruned := s.nextQueue(plan.Conflicts)
	queueChanged := newConflicts > 0 || pruned > 0 || len(plan.Conflicts) > 0

	commit := storage.PassCommit{SyncedAt: s.now().UnixMilli()}
	if hasLocalChanges(plan.Actions) {
		commit.Records = plan.Local
	}
	if queueChanged {
		commit.Conflicts = next
		commit.QueueChanged = true
	}
	if err := s.passStorage.CommitPass(ctx, commit); err != nil {
		result.Err = fmt.Errorf("%w: commit pass: %w", storage.ErrStorageFault, err)
		s.logger.Error("Sync pass aborted", "error", result.Err)
		return result
	}
	if queueChanged {
		s.queue.Load(next)
		s.logConflicts(plan.Conflicts, pruned)
	}
	result.NewConflicts = newConflicts
	result.Pruned = pruned

	s.push(ctx, &plan)
	result.Actions = plan.Actions

	for _, a := range plan.Actions {
		switch {
		case a.Failed():
			result.PushFailures++
		case a.Type == merge.ActionAddedLocal:
			result.Added++
		case a.Type == merge.ActionServerOverwroteLocal:
			result.ServerWins++
		case a.Type.IsPush():
			result.LocalPushed++
		}
	}

	s.logger.Info("Sync pass completed",
		"added", result.Added,
		"server_wins", result.ServerWins,
		"local_pushed", result.LocalPushed,
		"push_failures", result.PushFailures,
		"new_conflicts", result.NewConflicts,
		"pending_conflicts", s.queue.Len())

	return result
}

// nextQueue строит очередь после прохода, не трогая текущую:
// новые конфликты добавляются в конец, повторные заменяются на месте,
// конфликты, которых больше нет, удаляются.
func (s *Service) nextQueue(detected []models.Conflict) (list []models.Conflict, added, pruned int) {
	next := conflicts.NewQueue()
	next.Load(s.queue.List())

	current := make(map[string]struct{}, len(detected))
	for _, c := range detected {
		current[c.ID()] = struct{}{}
		if !next.Enqueue(c) {
			added++
		}
	}
	for _, c := range s.queue.List() {
		if _, ok := current[c.ID()]; !ok {
			_ = next.Remove(c.ID())
			pruned++
		}
	}

	return next.List(), added, pruned
}

func (s *Service) logConflicts(detected []models.Conflict, pruned int) {
	for _, c := range detected {
		s.logger.Info("Conflict detected",
			"id", c.ID(),
			"local_updated_at", c.Local.UpdatedAt,
			"remote_updated_at", c.Remote.UpdatedAt)
	}
	if pruned > 0 {
		s.logger.Info("Pruned stale conflicts", "count", pruned)
	}
}

// push отправляет записи плана на сервер последовательно.
// Ошибка записывается в соответствующее действие и не прерывает проход.
func (s *Service) push(ctx context.Context, plan *merge.Plan) {
	index := make(map[string]int, len(plan.Actions))
	for i, a := range plan.Actions {
		if a.Type.IsPush() {
			index[a.ID] = i
		}
	}

	for _, r := range plan.Push {
		_, err := s.apiClient.Upsert(ctx, r)
		if err == nil {
			s.logger.Debug("Record pushed", "id", r.ID, "updated_at", r.UpdatedAt)
			continue
		}

		s.logger.Warn("Failed to push record", "id", r.ID, "error", err)
		if i, ok := index[r.ID]; ok {
			plan.Actions[i].Err = err
		}
	}
}

// PushRecord отправляет одну локальную запись на сервер вне прохода
func (s *Service) PushRecord(ctx context.Context, id string) (*api.Ack, error) {
	local, err := s.records.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load local records: %w", storage.ErrStorageFault, err)
	}

	r, ok := local[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrRecordNotFound, id)
	}

	ack, err := s.apiClient.Upsert(ctx, r)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Record pushed", "id", id)
	return ack, nil
}

// Status описывает состояние локальной реплики
type Status struct {
	LastSyncAt       time.Time // нулевое значение, если синхронизаций не было
	LocalRecords     int
	PendingConflicts int
}

// Status returns the last sync time, the local record count and the number
// of pending conflicts
func (s *Service) Status(ctx context.Context) (*Status, error) {
	ts, err := s.passStorage.LastSyncAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageFault, err)
	}

	local, err := s.records.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageFault, err)
	}

	st := &Status{
		LocalRecords:     len(local),
		PendingConflicts: s.queue.Len(),
	}
	if ts > 0 {
		st.LastSyncAt = time.UnixMilli(ts)
	}
	return st, nil
}

func hasLocalChanges(actions []merge.Action) bool {
	for _, a := range actions {
		if a.Type == merge.ActionAddedLocal || a.Type == merge.ActionServerOverwroteLocal {
			return true
		}
	}
	return false
}

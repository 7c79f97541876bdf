package sync

import (
	"time"

	"github.com/iudanet/quotesync/internal/merge"
	"github.com/iudanet/quotesync/internal/models"
)

// PassResult contains the outcome of one sync pass
type PassResult struct {
	StartedAt  time.Time
	FinishedAt time.Time
	// Err is non-nil when the pass was aborted (remote fetch or local storage failure)
	Err error
	// Actions журнал действий в порядке ID; Err у действия заполнен при ошибке push
	Actions []merge.Action
	// Conflicts конфликты, ожидающие решения после прохода
	Conflicts []models.Conflict

	Policy       merge.Policy
	Added        int // записи, добавленные с сервера
	ServerWins   int // локальные записи, перезаписанные серверными
	LocalPushed  int // записи, успешно отправленные на сервер
	PushFailures int // неудачные отправки
	NewConflicts int // конфликты, которых не было в очереди до прохода
	Pruned       int // устаревшие конфликты, удаленные из очереди
}

// Failed reports whether the pass was aborted
func (r *PassResult) Failed() bool {
	return r.Err != nil
}

// Duration returns how long the pass took
func (r *PassResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// FailedActions returns the actions that were attempted and failed
func (r *PassResult) FailedActions() []merge.Action {
	var out []merge.Action
	for _, a := range r.Actions {
		if a.Failed() {
			out = append(out, a)
		}
	}
	return out
}

// ResolutionFailure одна неудачная попытка разрешить конфликт
type ResolutionFailure struct {
	Err error
	ID  string
}

// ResolutionResult contains the outcome of a resolution action
type ResolutionResult struct {
	Failed   []ResolutionFailure
	Resolved []string
	Cleared  int
	Choice   Choice
}

// Err returns the first failure, if any
func (r *ResolutionResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return r.Failed[0].Err
}

// Package merge classifies the union of a local and a remote replica into a
// merge plan. The package performs no I/O: callers fetch the snapshots,
// call Classify and then apply the resulting Plan.
package merge

import (
	"sort"

	"github.com/iudanet/quotesync/internal/models"
)

// ActionType описывает, что проход синхронизации сделал с записью
type ActionType string

const (
	ActionAddedLocal           ActionType = "added_local"
	ActionPushedToServer       ActionType = "pushed_to_server"
	ActionServerOverwroteLocal ActionType = "server_overwrote_local"
	ActionLocalPushedToServer  ActionType = "local_pushed_to_server"
)

// IsPush reports whether the action requires an upsert on the remote side.
func (t ActionType) IsPush() bool {
	return t == ActionPushedToServer || t == ActionLocalPushedToServer
}

// Action одна запись журнала действий прохода.
// Err заполняется исполнителем плана, если действие не удалось.
type Action struct {
	Err  error      `json:"-"`
	Type ActionType `json:"type"`
	ID   string     `json:"id"`
}

// Failed reports whether the action was attempted and failed.
func (a Action) Failed() bool {
	return a.Err != nil
}

// Plan результат классификации. Ничего из плана еще не применено.
type Plan struct {
	// Local локальная коллекция после применения не-конфликтных действий
	Local models.Collection
	// Push записи, которые нужно отправить на сервер, в порядке ID
	Push []models.Record
	// Actions журнал действий в порядке ID
	Actions []Action
	// Conflicts расхождения, требующие ручного решения (только PolicyManual)
	Conflicts []models.Conflict
	// Converged ID записей, совпадающих по содержимому в обеих репликах
	Converged []string
}

// Resolved returns the IDs whose divergence was settled by this plan without
// a conflict: converged records plus auto-resolved ones.
func (p *Plan) Resolved() []string {
	out := make([]string, 0, len(p.Converged)+len(p.Actions))
	out = append(out, p.Converged...)
	for _, a := range p.Actions {
		if a.Type == ActionServerOverwroteLocal || a.Type == ActionLocalPushedToServer {
			out = append(out, a.ID)
		}
	}
	return out
}

// Classify сравнивает локальную и удаленную реплики и строит план.
//
// Для каждого ID из объединения (в порядке сортировки):
//   - только на сервере: добавить локально (added_local);
//   - только локально: отправить на сервер (pushed_to_server);
//   - текст совпадает: ничего не делать;
//   - текст различается и remote.UpdatedAt >= local.UpdatedAt:
//     auto перезаписывает локальную запись (server_overwrote_local),
//     manual ставит конфликт;
//   - текст различается и локальная строго новее:
//     auto отправляет локальную (local_pushed_to_server), manual ставит конфликт.
//
// При равных метках времени и разном тексте побеждает сервер.
// Входные коллекции не изменяются.
func Classify(local, remote models.Collection, policy Policy) Plan {
	plan := Plan{Local: local.Clone()}

	for _, id := range unionIDs(local, remote) {
		l, inLocal := local[id]
		r, inRemote := remote[id]

		switch {
		case !inLocal:
			plan.Local[id] = r
			plan.Actions = append(plan.Actions, Action{Type: ActionAddedLocal, ID: id})

		case !inRemote:
			plan.Push = append(plan.Push, l)
			plan.Actions = append(plan.Actions, Action{Type: ActionPushedToServer, ID: id})

		case l.ContentEquals(r):
			plan.Converged = append(plan.Converged, id)

		case policy == PolicyManual:
			plan.Conflicts = append(plan.Conflicts, models.Conflict{Local: l, Remote: r})

		case l.IsNewerThan(r):
			plan.Push = append(plan.Push, l)
			plan.Actions = append(plan.Actions, Action{Type: ActionLocalPushedToServer, ID: id})

		default:
			// remote новее или метки равны
			plan.Local[id] = r
			plan.Actions = append(plan.Actions, Action{Type: ActionServerOverwroteLocal, ID: id})
		}
	}

	return plan
}

func unionIDs(local, remote models.Collection) []string {
	ids := make([]string, 0, len(local)+len(remote))
	for id := range local {
		ids = append(ids, id)
	}
	for id := range remote {
		if _, ok := local[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

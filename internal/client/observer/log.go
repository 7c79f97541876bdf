// Package observer contains scheduler observers that report sync outcomes
// to the log and to Prometheus.
package observer

import (
	"log/slog"

	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/sync"
)

// Log пишет результаты проходов и разрешений в slog
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging observer
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// OnPass logs a pass outcome
func (o *Log) OnPass(result *sync.PassResult, state conflicts.State) {
	if result.Failed() {
		o.logger.Warn("Sync pass failed",
			"policy", result.Policy,
			"error", result.Err,
			"pending_conflicts", state.Len())
		return
	}

	attrs := []any{
		"policy", result.Policy,
		"added", result.Added,
		"server_wins", result.ServerWins,
		"local_pushed", result.LocalPushed,
		"new_conflicts", result.NewConflicts,
		"pending_conflicts", state.Len(),
		"duration", result.Duration(),
	}
	if result.PushFailures > 0 {
		for _, a := range result.FailedActions() {
			o.logger.Warn("Push failed", "id", a.ID, "action", a.Type, "error", a.Err)
		}
		o.logger.Warn("Sync pass completed with push failures",
			append(attrs, "push_failures", result.PushFailures)...)
		return
	}
	o.logger.Info("Sync pass completed", attrs...)
}

// OnResolution logs a resolution outcome
func (o *Log) OnResolution(result *sync.ResolutionResult, state conflicts.State) {
	for _, f := range result.Failed {
		o.logger.Warn("Conflict resolution failed", "id", f.ID, "choice", result.Choice, "error", f.Err)
	}
	o.logger.Info("Conflict resolution applied",
		"choice", result.Choice,
		"resolved", len(result.Resolved),
		"failed", len(result.Failed),
		"cleared", result.Cleared,
		"pending_conflicts", state.Len())
}

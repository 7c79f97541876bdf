package scheduler

import (
	"context"

	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/sync"
	"github.com/iudanet/quotesync/internal/merge"
)

//go:generate moq -out runner_mock.go . Runner

// Runner executes passes and resolutions; *sync.Service implements it
type Runner interface {
	RunPass(ctx context.Context, policy merge.Policy) *sync.PassResult
	ResolveOne(ctx context.Context, id string, choice sync.Choice) error
	ResolveAll(ctx context.Context, choice sync.Choice) *sync.ResolutionResult
	ClearConflicts(ctx context.Context) (*sync.ResolutionResult, error)
	Conflicts() conflicts.State
}

//go:generate moq -out observer_mock.go . Observer

// Observer receives the outcome of every pass and every resolution action.
// Calls happen on the scheduler's delivery goroutine, one at a time.
type Observer interface {
	OnPass(result *sync.PassResult, state conflicts.State)
	OnResolution(result *sync.ResolutionResult, state conflicts.State)
}

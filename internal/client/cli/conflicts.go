package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/scheduler"
	"github.com/iudanet/quotesync/internal/client/sync"
)

// errQuit прерывает интерактивное разрешение по запросу пользователя
var errQuit = errors.New("quit")

func (c *Cli) runConflictsList() error {
	state := c.scheduler.Conflicts()
	if state.Len() == 0 {
		c.io.Println("No pending conflicts")
		return nil
	}

	c.io.Printf("%d conflict(s) found\n", state.Len())
	for _, conflict := range state.Conflicts {
		if err := render(c.io, "conflict", conflictTemplate, conflict); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cli) runResolve(ctx context.Context, id string, choice sync.Choice) error {
	if err := c.scheduler.ResolveOne(ctx, id, choice); err != nil {
		return resolveError(id, err)
	}

	c.io.Printf("✓ Conflict %s resolved (kept %s)\n", id, choice)
	return nil
}

func (c *Cli) runResolveAll(ctx context.Context, choice sync.Choice) error {
	result, err := c.scheduler.ResolveAll(ctx, choice)
	if err != nil {
		return resolveError("", err)
	}

	c.io.Printf("✓ Resolved %d conflict(s) (kept %s)\n", len(result.Resolved), choice)
	for _, f := range result.Failed {
		c.io.Printf("⚠️  %s: %v\n", f.ID, f.Err)
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d conflict(s) could not be resolved: %w", len(result.Failed), result.Err())
	}
	return nil
}

func (c *Cli) runClear(ctx context.Context) error {
	result, err := c.scheduler.ClearConflicts(ctx)
	if err != nil {
		return resolveError("", err)
	}

	c.io.Printf("✓ Discarded %d conflict(s)\n", result.Cleared)
	return nil
}

// runInteractive показывает конфликты по одному и спрашивает, какую версию оставить
func (c *Cli) runInteractive(ctx context.Context) error {
	state := c.scheduler.Conflicts()
	if state.Len() == 0 {
		c.io.Println("No pending conflicts")
		return nil
	}

	resolved := 0
	for _, conflict := range state.Conflicts {
		if err := render(c.io, "conflict", conflictTemplate, conflict); err != nil {
			return err
		}

		choice, skip, err := c.askChoice()
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if skip {
			continue
		}

		if err := c.scheduler.ResolveOne(ctx, conflict.ID(), choice); err != nil {
			c.io.Printf("⚠️  %v\n", resolveError(conflict.ID(), err))
			continue
		}
		resolved++
	}

	c.io.Printf("\nResolved %d of %d conflict(s)\n", resolved, state.Len())
	return nil
}

func (c *Cli) askChoice() (sync.Choice, bool, error) {
	for {
		answer, err := c.io.ReadInput("Keep [l]ocal, [r]emote, [s]kip or [q]uit: ")
		if err != nil {
			return 0, false, err
		}

		switch strings.ToLower(answer) {
		case "l", "local":
			return sync.KeepLocal, false, nil
		case "r", "remote", "server":
			return sync.KeepRemote, false, nil
		case "s", "skip", "":
			return 0, true, nil
		case "q", "quit":
			return 0, false, errQuit
		default:
			c.io.Println("Please answer l, r, s or q.")
		}
	}
}

func resolveError(id string, err error) error {
	switch {
	case errors.Is(err, scheduler.ErrBusy):
		return fmt.Errorf("synchronization is running, try again later")
	case errors.Is(err, conflicts.ErrNotFound):
		return fmt.Errorf("no pending conflict with ID: %s", id)
	default:
		return fmt.Errorf("resolution failed: %w", err)
	}
}

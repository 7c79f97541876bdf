package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/quotesync/internal/client/scheduler"
	"github.com/iudanet/quotesync/internal/client/storage"
	"github.com/iudanet/quotesync/internal/client/sync"
	"github.com/iudanet/quotesync/internal/merge"
)

func (c *Cli) runSync(ctx context.Context, policy merge.Policy) error {
	c.io.Println("Starting synchronization with server...")

	result, err := c.scheduler.TriggerNow(ctx, policy)
	if err != nil {
		if errors.Is(err, scheduler.ErrBusy) {
			return fmt.Errorf("synchronization is already running, try again later")
		}
		return err
	}

	if result.Failed() {
		return fmt.Errorf("synchronization failed: %w", result.Err)
	}

	if err := render(c.io, "pass", passTemplate, result); err != nil {
		return err
	}

	for _, a := range result.FailedActions() {
		c.io.Printf("⚠️  %s %s: %v\n", a.Type, a.ID, a.Err)
	}
	if len(result.Conflicts) > 0 {
		c.io.Println()
		c.io.Println("Run 'quotesync conflicts list' to review pending conflicts.")
	}
	return nil
}

func (c *Cli) runPush(ctx context.Context, id string) error {
	ack, err := c.syncService.PushRecord(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return fmt.Errorf("quote not found with ID: %s", id)
		}
		return fmt.Errorf("push failed: %w", err)
	}

	c.io.Printf("✓ Quote %s pushed to server\n", ack.ID)
	return nil
}

// statusView данные для statusTemplate
type statusView struct {
	*sync.Status
	Server   string
	Database string
	Policy   string
}

func (c *Cli) runStatus(ctx context.Context) error {
	st, err := c.syncService.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	view := statusView{
		Status:   st,
		Server:   c.cfg.ServerURL,
		Database: c.cfg.DBPath,
		Policy:   c.cfg.MergePolicy().String(),
	}
	return render(c.io, "status", statusTemplate, view)
}

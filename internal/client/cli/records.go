package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/quotesync/internal/client/data"
	"github.com/iudanet/quotesync/internal/client/storage"
)

func (c *Cli) runAdd(ctx context.Context, text, category string) error {
	record, err := c.dataService.Add(ctx, text, category)
	if err != nil {
		return fmt.Errorf("failed to add quote: %w", err)
	}

	c.io.Println("✓ Quote added")
	return render(c.io, "record", recordTemplate, record)
}

func (c *Cli) runEdit(ctx context.Context, id, text, category string) error {
	if text == "" && category == "" {
		return fmt.Errorf("nothing to change: pass --text and/or --category")
	}

	record, err := c.dataService.Edit(ctx, id, text, category)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return fmt.Errorf("quote not found with ID: %s", id)
		}
		return fmt.Errorf("failed to edit quote: %w", err)
	}

	c.io.Println("✓ Quote updated")
	return render(c.io, "record", recordTemplate, record)
}

func (c *Cli) runRemove(ctx context.Context, id string) error {
	if err := c.dataService.Remove(ctx, id); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return fmt.Errorf("quote not found with ID: %s", id)
		}
		return fmt.Errorf("failed to remove quote: %w", err)
	}

	c.io.Printf("✓ Quote %s removed locally\n", id)
	c.io.Println("Note: the server copy is kept and will come back on the next sync.")
	return nil
}

func (c *Cli) runShow(ctx context.Context, id string) error {
	record, err := c.dataService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return fmt.Errorf("quote not found with ID: %s", id)
		}
		return fmt.Errorf("failed to get quote: %w", err)
	}
	return render(c.io, "record", recordTemplate, record)
}

func (c *Cli) runList(ctx context.Context, category string) error {
	records, err := c.dataService.List(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to list quotes: %w", err)
	}

	if category == "" {
		c.io.Println("=== Quotes ===")
	} else {
		c.io.Printf("=== Quotes: %s ===\n", category)
	}
	c.io.Println()

	if len(records) == 0 {
		c.io.Println("No quotes")
		return nil
	}

	for i, r := range records {
		c.io.Printf("%d. %q\n", i+1, r.Text)
		c.io.Printf("   Category: %s\n", r.Category)
		c.io.Printf("   ID: %s\n", r.ID)
		c.io.Println()
	}
	c.io.Printf("Total: %d quote(s)\n", len(records))
	return nil
}

func (c *Cli) runCategories(ctx context.Context) error {
	cats, err := c.dataService.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(cats) == 0 {
		c.io.Println("No categories")
		return nil
	}
	for _, cat := range cats {
		c.io.Println(cat)
	}
	return nil
}

func (c *Cli) runRandom(ctx context.Context, category string) error {
	record, err := c.dataService.Random(ctx, category)
	if err != nil {
		if errors.Is(err, data.ErrNoRecords) {
			c.io.Println("No quotes found.")
			return nil
		}
		return fmt.Errorf("failed to pick a quote: %w", err)
	}

	c.io.Printf("%q\n", record.Text)
	c.io.Printf("  (%s)\n", record.Category)
	return nil
}

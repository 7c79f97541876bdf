package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/quotesync/internal/client/scheduler"
)

const (
	metricsReadHeaderTimeout = 5 * time.Second
	metricsShutdownTimeout   = 5 * time.Second
)

// runDaemon синхронизирует реплику сразу и затем каждые cfg.SyncInterval
// до отмены ctx. Если задан metrics_addr, поднимает /metrics.
func (c *Cli) runDaemon(ctx context.Context) error {
	c.logger.Info("Starting sync daemon",
		"server", c.cfg.ServerURL,
		"interval", c.cfg.SyncInterval,
		"policy", c.scheduler.Policy().String())

	if _, err := c.scheduler.TriggerNow(ctx, c.scheduler.Policy()); err != nil && !errors.Is(err, scheduler.ErrBusy) {
		return err
	}

	if err := c.scheduler.Start(c.cfg.SyncInterval); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	if c.cfg.MetricsAddr != "" && c.metrics != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", c.metrics.Handler())
		server := &http.Server{
			Addr:              c.cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		}

		g.Go(func() error {
			c.logger.Info("Metrics listening", "address", c.cfg.MetricsAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		c.logger.Info("Stopping sync daemon")
		// Stop дожидается завершения текущего прохода
		c.scheduler.Stop()
		return nil
	})

	return g.Wait()
}

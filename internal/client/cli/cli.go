package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/template"

	"github.com/iudanet/quotesync/internal/client/api"
	"github.com/iudanet/quotesync/internal/client/data"
	"github.com/iudanet/quotesync/internal/client/iocli"
	"github.com/iudanet/quotesync/internal/client/observer"
	"github.com/iudanet/quotesync/internal/client/scheduler"
	"github.com/iudanet/quotesync/internal/client/storage/boltdb"
	"github.com/iudanet/quotesync/internal/client/sync"
	"github.com/iudanet/quotesync/internal/clock"
	"github.com/iudanet/quotesync/internal/config"
)

// Cli связывает команды с сервисами клиента
type Cli struct {
	io          iocli.IO
	dataService *data.Service
	syncService *sync.Service
	scheduler   *scheduler.Scheduler
	metrics     *observer.Metrics
	cfg         *config.ClientConfig
	logger      *slog.Logger
}

// New creates a CLI over already constructed services
func New(
	stdio iocli.IO,
	dataService *data.Service,
	syncService *sync.Service,
	sched *scheduler.Scheduler,
	metrics *observer.Metrics,
	cfg *config.ClientConfig,
	logger *slog.Logger,
) *Cli {
	return &Cli{
		io:          stdio,
		dataService: dataService,
		syncService: syncService,
		scheduler:   sched,
		metrics:     metrics,
		cfg:         cfg,
		logger:      logger,
	}
}

// Build открывает локальную базу, создает HTTP клиент и все сервисы.
// Возвращаемая функция останавливает планировщик и закрывает базу.
func Build(ctx context.Context, cfg *config.ClientConfig, stdio iocli.IO, logger *slog.Logger) (*Cli, func() error, error) {
	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	apiClient := api.NewClient(cfg.ServerURL,
		api.WithToken(cfg.Token),
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithRetry(cfg.Retry.MaxTries, cfg.Retry.MaxInterval),
		api.WithLogger(logger),
	)

	// boltdb.Storage реализует RecordStorage, ConflictStorage и PassStorage
	syncService := sync.NewService(apiClient, store, store, store, logger)
	if err := syncService.Restore(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to restore conflict queue: %w", err)
	}

	metrics := observer.NewMetrics()
	sched := scheduler.New(syncService, logger,
		scheduler.WithPolicy(cfg.MergePolicy()),
		scheduler.WithObserver(observer.NewLog(logger)),
		scheduler.WithObserver(metrics),
	)

	dataService := data.NewService(store, clock.New(), logger)

	cleanup := func() error {
		sched.Close()
		return store.Close()
	}

	return New(stdio, dataService, syncService, sched, metrics, cfg, logger), cleanup, nil
}

// render выводит данные по шаблону
func render(w io.Writer, name, text string, data any) error {
	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/quotesync/internal/config"
	"github.com/iudanet/quotesync/internal/logging"
	"github.com/iudanet/quotesync/internal/server"
	"github.com/iudanet/quotesync/internal/server/jwt"
	"github.com/iudanet/quotesync/internal/server/middleware"
	"github.com/iudanet/quotesync/internal/server/storage/sqlite"
)

const (
	gracefulTimeout   = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second

	rateLimit  = 600
	rateWindow = time.Minute
)

// serve запускает HTTP сервер и блокируется до отмены ctx
func serve(ctx context.Context, cfg *config.ServerConfig, version string, logOut io.Writer) error {
	logger, closer, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	limiter := middleware.NewRateLimiter(rateLimit, rateWindow, logger)
	defer limiter.Stop()

	opts := []server.RouterOption{
		server.WithVersion(version),
		server.WithHealthCheck(store),
		server.WithRateLimiter(limiter),
	}
	if cfg.JWTSecret != "" {
		opts = append(opts, server.WithAuth(jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)))
	} else {
		logger.Warn("jwt_secret is empty, API is served without authentication")
	}

	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address, err)
	}

	srv := &http.Server{
		Handler:           server.NewRouter(logger, store, opts...),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("Starting server",
		"address", listener.Addr().String(),
		"db", cfg.DBPath,
		"version", version,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), gracefulTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

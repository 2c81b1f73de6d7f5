// Package app wires configuration, storage and services into the runnable
// matcher server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/citizenship-glossary/internal/config"
	"github.com/heartmarshall/citizenship-glossary/internal/metrics"
	"github.com/heartmarshall/citizenship-glossary/internal/service/matcher"
	"github.com/heartmarshall/citizenship-glossary/internal/transport/middleware"
	"github.com/heartmarshall/citizenship-glossary/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, opens storage,
// loads the glossary snapshot and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	storage, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	m := metrics.New()

	matcherSvc := matcher.NewService(logger, storage.Glossary, m, cfg.Matcher.FallbackLimit)
	if err := matcherSvc.Reload(ctx); err != nil {
		// Match serves fallback terms until a reload succeeds.
		logger.Warn("initial glossary load failed", slog.String("error", err.Error()))
	}
	go matcherSvc.Run(ctx, cfg.Matcher.ReloadInterval)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	var pinger interface {
		Ping(ctx context.Context) error
	}
	if storage.Pool != nil {
		pinger = storage.Pool
	}

	handler := NewRouter(RouterDeps{
		Logger:  logger,
		Config:  cfg,
		Matcher: matcherSvc,
		Health:  rest.NewHealthHandler(matcherSvc, pinger, BuildVersion()),
		Metrics: m.Handler(),
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("app.Run: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app.Run: shutdown: %w", err)
	}
	return nil
}

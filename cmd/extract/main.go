// Command extract runs the glossary extraction pipeline once.
//
// In documents mode it reads the source documents, extracts candidate terms
// chunk by chunk and asks the enrichment service to define and translate
// them. In questions mode it sends batches of quiz questions instead.
// Processed chunks and questions are recorded in the ledger so a rerun only
// handles new material.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/citizenship-glossary/internal/adapter/jsonfile"
	"github.com/heartmarshall/citizenship-glossary/internal/app"
	"github.com/heartmarshall/citizenship-glossary/internal/config"
	"github.com/heartmarshall/citizenship-glossary/internal/domain"
	"github.com/heartmarshall/citizenship-glossary/internal/enricher"
	"github.com/heartmarshall/citizenship-glossary/internal/metrics"
	"github.com/heartmarshall/citizenship-glossary/internal/ratelimit"
	"github.com/heartmarshall/citizenship-glossary/internal/service/glossary"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./config.yaml)")
	mode := flag.String("mode", string(domain.PipelineModeDocuments), "pipeline mode: documents or questions")
	resetLedger := flag.Bool("reset-ledger", false, "forget previously processed items before running")
	dryRun := flag.Bool("dry-run", false, "log prompts instead of calling the enrichment service; nothing is persisted")
	metricsAddr := flag.String("metrics-addr", "", "serve /metrics on this address while the run is in progress")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, options{
		mode:        domain.PipelineMode(*mode),
		resetLedger: *resetLedger,
		dryRun:      *dryRun || cfg.Pipeline.DryRun,
		metricsAddr: *metricsAddr,
	}); err != nil {
		logger.Error("extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type options struct {
	mode        domain.PipelineMode
	resetLedger bool
	dryRun      bool
	metricsAddr string
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts options) error {
	llm, err := app.NewCompleter(cfg.LLM, logger)
	if err != nil {
		return err
	}

	storage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	m := metrics.New()
	if opts.metricsAddr != "" {
		srv := &http.Server{Addr: opts.metricsAddr, Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
		defer srv.Close()
	}

	pipelineCfg := enricher.ConfigFrom(cfg.Pipeline)
	pipelineCfg.DryRun = opts.dryRun
	pipelineCfg.ResetLedger = opts.resetLedger

	pipeline := enricher.NewPipeline(logger, enricher.Deps{
		LLM:      llm,
		Glossary: glossary.NewService(logger, storage.Glossary),
		Ledger:   storage.Ledger,
		Sources:  jsonfile.NewSources(cfg.Pipeline),
		Pacer:    ratelimit.NewBucket(1, cfg.Pipeline.RequestInterval),
		Metrics:  m,
	}, pipelineCfg)

	res, err := pipeline.Run(ctx, opts.mode)
	if err != nil {
		return err
	}

	logger.Info("extraction complete",
		slog.String("mode", res.Mode.String()),
		slog.Int("batches", res.Batches),
		slog.Int("failed_batches", res.FailedBatches),
		slog.Int("terms_added", res.TermsAdded),
		slog.Int("items_processed", res.ItemsProcessed),
	)
	return nil
}

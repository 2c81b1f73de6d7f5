// Command import copies a file-backed glossary and ledger into PostgreSQL.
// The database schema must already be migrated (see cmd/migrate).
//
// Flags:
//
//	--config   path to YAML config (database settings)
//	--glossary glossary JSON file to read (default: storage.glossary_path)
//	--ledger   ledger JSON file to read (default: storage.ledger_path)
//	--dry-run  read the files without writing to the database
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/citizenship-glossary/internal/adapter/jsonfile"
	"github.com/heartmarshall/citizenship-glossary/internal/app"
	"github.com/heartmarshall/citizenship-glossary/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./config.yaml)")
	glossaryPath := flag.String("glossary", "", "glossary JSON file (default: storage.glossary_path)")
	ledgerPath := flag.String("ledger", "", "ledger JSON file (default: storage.ledger_path)")
	dryRun := flag.Bool("dry-run", false, "read the files without writing to the database")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log)

	if *glossaryPath == "" {
		*glossaryPath = cfg.Storage.GlossaryPath
	}
	if *ledgerPath == "" {
		*ledgerPath = cfg.Storage.LedgerPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	src := &app.Storage{
		Glossary: jsonfile.NewGlossaryStore(*glossaryPath),
		Ledger:   jsonfile.NewLedgerStore(*ledgerPath),
	}

	dbCfg := *cfg
	dbCfg.Storage.Driver = config.DriverPostgres
	dst, err := app.OpenStorage(ctx, &dbCfg, logger)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dst.Close()

	if _, err := app.CopyStorage(ctx, logger, src, dst, *dryRun); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/meltforce/tacticalfit/internal/config"
	"github.com/meltforce/tacticalfit/internal/importer"
	"github.com/meltforce/tacticalfit/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("export", "", "write a snapshot of the configured store to this file (- for stdout)")
	importPath := flag.String("import", "", "load a snapshot file into the configured store")
	dryRun := flag.Bool("dry-run", false, "report counts without writing to the store")
	merge := flag.Bool("merge", false, "add imported completions to existing progress instead of replacing it")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintf(os.Stderr, "Usage: tacticalfit-import -config config.yaml (-export FILE | -import FILE [-merge] [-dry-run])\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	kv, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.Storage.Driver,
		SQLiteDir:   cfg.Storage.SQLiteDir,
		PostgresDSN: cfg.Storage.Postgres.DSN(),
		Redis: storage.RedisOptions{
			Addr:      cfg.Storage.Redis.Addr,
			Password:  cfg.Storage.Redis.Password,
			DB:        cfg.Storage.Redis.DB,
			KeyPrefix: cfg.Storage.Redis.KeyPrefix,
		},
	}, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	if *exportPath != "" {
		if err := export(ctx, kv, *exportPath); err != nil {
			log.Error("export failed", "error", err)
			os.Exit(1)
		}
		log.Info("export complete", "path", *exportPath)
		return
	}

	f, err := os.Open(*importPath)
	if err != nil {
		log.Error("failed to open snapshot", "error", err)
		os.Exit(1)
	}
	snap, err := importer.ReadSnapshot(f)
	_ = f.Close()
	if err != nil {
		log.Error("failed to read snapshot", "path", *importPath, "error", err)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN mode: nothing will be written to the store")
	}
	// A running server keeps its own copy of progress in memory and will
	// overwrite the import on its next toggle; stop it first.
	log.Warn("make sure the tacticalfit server using this store is stopped")

	imp := importer.New(kv, log, *dryRun, *merge)
	stats, err := imp.Import(ctx, snap)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func export(ctx context.Context, kv storage.KV, path string) error {
	snap, err := importer.Export(ctx, kv, time.Now())
	if err != nil {
		return err
	}
	if path == "-" {
		return snap.Write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snap.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"days_imported", stats.DaysImported,
		"days_skipped", stats.DaysSkipped,
		"completions_imported", stats.CompletionsImported,
		"start_date_set", stats.StartDateSet,
	)
}

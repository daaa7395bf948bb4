package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/tacticalfit/internal/app"
	"github.com/meltforce/tacticalfit/internal/config"
	"github.com/meltforce/tacticalfit/internal/mcp"
	"github.com/meltforce/tacticalfit/internal/program"
	"github.com/meltforce/tacticalfit/internal/schedule"
	"github.com/meltforce/tacticalfit/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local mode)")
	remoteURL := flag.String("remote", "", "TacticalFit server URL (e.g. https://tacticalfit.tail1234.ts.net); uses the REST API instead of local storage")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("tacticalfit-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *remoteURL != "" {
		log.Info("TacticalFit MCP starting", "version", Version, "mode", "remote", "server", *remoteURL)
		ds = mcp.NewHTTPClient(*remoteURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		loc, err := cfg.Program.Location()
		if err != nil {
			log.Error("invalid timezone", "error", err)
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

		tracker, err := app.New(ctx, kv, schedule.New(program.Default()), log,
			app.WithClock(func() time.Time { return time.Now().In(loc) }))
		if err != nil {
			log.Error("failed to load tracker state", "error", err)
			os.Exit(1)
		}
		log.Info("TacticalFit MCP starting", "version", Version, "mode", "local", "storage", cfg.Storage.Driver)
		ds = mcp.NewLocal(tracker)
	}

	s := mcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/meltforce/tacticalfit/internal/app"
	"github.com/meltforce/tacticalfit/internal/config"
	"github.com/meltforce/tacticalfit/internal/metrics"
	"github.com/meltforce/tacticalfit/internal/program"
	"github.com/meltforce/tacticalfit/internal/schedule"
	"github.com/meltforce/tacticalfit/internal/server"
	"github.com/meltforce/tacticalfit/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (defaults and TACTICALFIT_ env vars when empty)")
	migrateOnly := flag.Bool("migrate-only", false, "run postgres migrations and exit")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("tacticalfit", Version)
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log)
	log.Info("TacticalFit starting", "version", Version, "storage", cfg.Storage.Driver)

	if *migrateOnly {
		if cfg.Storage.Driver != storage.DriverPostgres {
			log.Error("migrate-only requires the postgres storage driver", "driver", cfg.Storage.Driver)
			os.Exit(1)
		}
		if err := storage.RunMigrations(cfg.Storage.Postgres.DSN()); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrate-only: exiting")
		return
	}

	loc, err := cfg.Program.Location()
	if err != nil {
		log.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	// Connect storage
	ctx := context.Background()
	kv, err := storage.Open(ctx, storageOptions(cfg.Storage), log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	// Metrics
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("tacticalfit", "", promRegistry)

	tracker, err := app.New(ctx, kv, schedule.New(program.Default()), log,
		app.WithClock(func() time.Time { return time.Now().In(loc) }),
		app.WithObserver(metricsManager),
	)
	if err != nil {
		log.Error("failed to load tracker state", "error", err)
		os.Exit(1)
	}
	log.Info("tracker ready", "start_date", tracker.Settings().StartDate, "today", tracker.Settings().Today)

	// Create server
	srv := server.New(tracker, metricsManager, promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}), log)

	// Start server: tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()
	metricsManager.GaugeLifeSignal.Set(1)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)
	metricsManager.GaugeLifeSignal.Set(0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

func newLogger(c config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func storageOptions(c config.StorageConfig) storage.Options {
	return storage.Options{
		Driver:      c.Driver,
		SQLiteDir:   c.SQLiteDir,
		PostgresDSN: c.Postgres.DSN(),
		Redis: storage.RedisOptions{
			Addr:      c.Redis.Addr,
			Password:  c.Redis.Password,
			DB:        c.Redis.DB,
			KeyPrefix: c.Redis.KeyPrefix,
		},
	}
}

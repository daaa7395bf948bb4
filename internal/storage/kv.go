// Package storage provides the string key/value backends that hold the
// tracker's persisted state (program start date and progress blob).
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// KV is an opaque get/set/delete string store.
type KV interface {
	// Get returns ok=false when key has never been set or was deleted.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Driver      string
	SQLiteDir   string
	PostgresDSN string
	Redis       RedisOptions
}

// Open connects the backend named by opts.Driver.
func Open(ctx context.Context, opts Options, log *slog.Logger) (KV, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		log.Info("opening sqlite store", "dir", opts.SQLiteDir)
		return OpenSQLite(opts.SQLiteDir)
	case DriverPostgres:
		if err := RunMigrations(opts.PostgresDSN); err != nil {
			return nil, err
		}
		log.Info("postgres migrations applied")
		return NewPostgres(ctx, opts.PostgresDSN)
	case DriverRedis:
		log.Info("connecting redis store", "addr", opts.Redis.Addr)
		return NewRedis(ctx, opts.Redis)
	case DriverMemory:
		log.Warn("using in-memory store; progress is lost on exit")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

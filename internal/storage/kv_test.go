package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-redis/redismock/v8"
)

// exerciseKV runs the get/set/delete contract against any backend.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "start_date"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want false, nil", ok, err)
	}

	if err := kv.Set(ctx, "start_date", "2026-01-19T00:00:00Z"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "start_date")
	if err != nil || !ok || v != "2026-01-19T00:00:00Z" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}

	// Overwrite.
	if err := kv.Set(ctx, "start_date", "2026-02-02T00:00:00Z"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, _, _ := kv.Get(ctx, "start_date"); v != "2026-02-02T00:00:00Z" {
		t.Errorf("after overwrite Get = %q", v)
	}

	if err := kv.Delete(ctx, "start_date"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "start_date"); ok {
		t.Error("key still present after Delete")
	}
	// Deleting a missing key is not an error.
	if err := kv.Delete(ctx, "start_date"); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}

// TestMemory verifies the map-backed store.
func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

// TestSQLite verifies the sqlite store against a real database file and that
// values survive reopening.
func TestSQLite(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	exerciseKV(t, kv)

	ctx := context.Background()
	if err := kv.Set(ctx, "workout_progress", `{"2026-01-19":{"B3: Front Plank":true}}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	kv.Close()

	reopened, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	v, ok, err := reopened.Get(ctx, "workout_progress")
	if err != nil || !ok || v != `{"2026-01-19":{"B3: Front Plank":true}}` {
		t.Errorf("after reopen Get = %q, %v, %v", v, ok, err)
	}
}

// TestRedis verifies key prefixing and redis.Nil handling with a mocked client.
func TestRedis(t *testing.T) {
	client, mock := redismock.NewClientMock()
	kv := NewRedisFromClient(client, "tf:")
	ctx := context.Background()

	mock.ExpectGet("tf:workout_progress").RedisNil()
	if _, ok, err := kv.Get(ctx, "workout_progress"); err != nil || ok {
		t.Errorf("Get(missing) = ok %v, err %v", ok, err)
	}

	mock.ExpectSet("tf:workout_progress", "{}", 0).SetVal("OK")
	if err := kv.Set(ctx, "workout_progress", "{}"); err != nil {
		t.Errorf("Set: %v", err)
	}

	mock.ExpectGet("tf:workout_progress").SetVal("{}")
	if v, ok, err := kv.Get(ctx, "workout_progress"); err != nil || !ok || v != "{}" {
		t.Errorf("Get = %q, %v, %v", v, ok, err)
	}

	mock.ExpectDel("tf:workout_progress").SetVal(1)
	if err := kv.Delete(ctx, "workout_progress"); err != nil {
		t.Errorf("Delete: %v", err)
	}

	mock.ExpectGet("tf:start_date").SetErr(errors.New("connection refused"))
	if _, _, err := kv.Get(ctx, "start_date"); err == nil {
		t.Error("expected error from failing redis")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestOpenUnknownDriver verifies driver validation.
func TestOpenUnknownDriver(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := Open(context.Background(), Options{Driver: "mongo"}, log)
	if !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Open(mongo) error = %v, want ErrUnknownDriver", err)
	}

	kv, err := Open(context.Background(), Options{Driver: DriverMemory}, log)
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	if _, ok := kv.(*Memory); !ok {
		t.Errorf("Open(memory) = %T, want *Memory", kv)
	}
}

// Package progress tracks which exercises were completed on which day and
// mirrors that state to a key/value backend after every change.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Key is the backend key holding the serialized progress blob.
const Key = "workout_progress"

// DayProgress maps exercise name to completion for one date.
type DayProgress = map[string]bool

// Progress maps an ISO date key (YYYY-MM-DD) to that day's completions.
type Progress map[string]DayProgress

// Backend is the opaque string store the progress blob lives in.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Encode serializes progress as {"date": {"exercise": bool}}.
func Encode(p Progress) ([]byte, error) {
	if p == nil {
		p = Progress{}
	}
	return json.Marshal(p)
}

// Decode parses a serialized blob. Anything that is not a two-level object
// of booleans is an error.
func Decode(data []byte) (Progress, error) {
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding progress: %w", err)
	}
	if p == nil {
		p = Progress{}
	}
	for date, day := range p {
		if day == nil {
			return nil, fmt.Errorf("decoding progress: day %q is null", date)
		}
	}
	return p, nil
}

// Store is the in-memory progress state, written through to a Backend.
type Store struct {
	mu   sync.Mutex
	kv   Backend
	log  *slog.Logger
	data Progress
}

// Load reads the persisted blob. A missing or malformed blob yields an empty
// store; only a failing backend read is returned as an error.
func Load(ctx context.Context, kv Backend, log *slog.Logger) (*Store, error) {
	s := &Store{kv: kv, log: log, data: Progress{}}

	raw, ok, err := kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", Key, err)
	}
	if !ok {
		return s, nil
	}

	p, err := Decode([]byte(raw))
	if err != nil {
		log.Warn("discarding unreadable progress blob", "key", Key, "error", err)
		return s, nil
	}
	s.data = p
	return s, nil
}

// IsComplete reports whether exercise was marked done on dateKey. Unknown
// pairs are not complete.
func (s *Store) IsComplete(dateKey, exercise string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[dateKey][exercise]
}

// Toggle flips the completion of exercise on dateKey and persists the whole
// store before returning. On a persistence error the flip is undone.
func (s *Store) Toggle(ctx context.Context, dateKey, exercise string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.data[dateKey]
	created := day == nil
	if created {
		day = DayProgress{}
		s.data[dateKey] = day
	}
	prev, had := day[exercise]
	day[exercise] = !prev

	if err := s.persist(ctx); err != nil {
		if had {
			day[exercise] = prev
		} else {
			delete(day, exercise)
		}
		if created {
			delete(s.data, dateKey)
		}
		return prev, err
	}
	return !prev, nil
}

// ResetAll removes every entry, in memory and in the backend.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("deleting %s: %w", Key, err)
	}
	s.data = Progress{}
	return nil
}

// Day returns a copy of the completions recorded for dateKey.
func (s *Store) Day(dateKey string) DayProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(DayProgress, len(s.data[dateKey]))
	for k, v := range s.data[dateKey] {
		out[k] = v
	}
	return out
}

// Snapshot returns a deep copy of the whole store.
func (s *Store) Snapshot() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(Progress, len(s.data))
	for date, day := range s.data {
		cp := make(DayProgress, len(day))
		for k, v := range day {
			cp[k] = v
		}
		out[date] = cp
	}
	return out
}

// Export serializes the current state.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Encode(s.data)
}

func (s *Store) persist(ctx context.Context) error {
	blob, err := Encode(s.data)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, Key, string(blob)); err != nil {
		return fmt.Errorf("writing %s: %w", Key, err)
	}
	return nil
}

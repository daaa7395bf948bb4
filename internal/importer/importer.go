// Package importer moves tracker state between backends through a portable
// JSON snapshot.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/meltforce/tacticalfit/internal/app"
	"github.com/meltforce/tacticalfit/internal/models"
	"github.com/meltforce/tacticalfit/internal/progress"
)

// SnapshotVersion is the current snapshot format.
const SnapshotVersion = 1

// Snapshot is the exported state of one tracker.
type Snapshot struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	StartDate  string            `json:"start_date,omitempty"`
	Progress   progress.Progress `json:"progress"`
}

// Export reads the persisted state from kv.
func Export(ctx context.Context, kv progress.Backend, now time.Time) (*Snapshot, error) {
	snap := &Snapshot{Version: SnapshotVersion, ExportedAt: now.UTC(), Progress: progress.Progress{}}

	raw, ok, err := kv.Get(ctx, app.StartDateKey)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", app.StartDateKey, err)
	}
	if ok {
		d, err := models.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("stored start date: %w", err)
		}
		snap.StartDate = models.DateKey(d)
	}

	raw, ok, err = kv.Get(ctx, progress.Key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", progress.Key, err)
	}
	if ok {
		p, err := progress.Decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		snap.Progress = p
	}
	return snap, nil
}

// Write encodes snap as indented JSON.
func (s *Snapshot) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// ReadSnapshot decodes a snapshot, rejecting unknown versions.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

// Stats tracks import progress.
type Stats struct {
	DaysImported        int
	DaysSkipped         int
	CompletionsImported int
	StartDateSet        bool
}

// Importer writes snapshots into a backend.
type Importer struct {
	kv     progress.Backend
	log    *slog.Logger
	dryRun bool
	merge  bool
}

// New creates a new Importer. With merge set, imported completions are added
// to the existing progress instead of replacing it.
func New(kv progress.Backend, log *slog.Logger, dryRun, merge bool) *Importer {
	return &Importer{kv: kv, log: log, dryRun: dryRun, merge: merge}
}

// Import applies snap. Days whose key is not a valid YYYY-MM-DD date are
// skipped and logged.
func (imp *Importer) Import(ctx context.Context, snap *Snapshot) (*Stats, error) {
	stats := &Stats{}

	target := progress.Progress{}
	if imp.merge {
		raw, ok, err := imp.kv.Get(ctx, progress.Key)
		if err != nil {
			return stats, fmt.Errorf("reading %s: %w", progress.Key, err)
		}
		if ok {
			if existing, err := progress.Decode([]byte(raw)); err == nil {
				target = existing
			} else {
				imp.log.Warn("existing progress unreadable, replacing", "error", err)
			}
		}
	}

	dates := make([]string, 0, len(snap.Progress))
	for date := range snap.Progress {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		d, err := time.Parse(models.DateLayout, date)
		if err != nil || models.DateKey(d) != date {
			imp.log.Warn("skipping day with invalid date key", "date", date)
			stats.DaysSkipped++
			continue
		}
		day := target[date]
		if day == nil {
			day = progress.DayProgress{}
			target[date] = day
		}
		for exercise, done := range snap.Progress[date] {
			if imp.merge && !done {
				continue
			}
			day[exercise] = done
			if done {
				stats.CompletionsImported++
			}
		}
		stats.DaysImported++
	}

	var start time.Time
	if snap.StartDate != "" {
		d, err := models.ParseDate(snap.StartDate)
		if err != nil {
			return stats, fmt.Errorf("snapshot start date: %w", err)
		}
		start = d
	}

	if imp.dryRun {
		stats.StartDateSet = !start.IsZero()
		return stats, nil
	}

	blob, err := progress.Encode(target)
	if err != nil {
		return stats, err
	}
	if err := imp.kv.Set(ctx, progress.Key, string(blob)); err != nil {
		return stats, fmt.Errorf("writing %s: %w", progress.Key, err)
	}
	if !start.IsZero() {
		if err := imp.kv.Set(ctx, app.StartDateKey, start.Format(time.RFC3339)); err != nil {
			return stats, fmt.Errorf("writing %s: %w", app.StartDateKey, err)
		}
		stats.StartDateSet = true
	}
	return stats, nil
}

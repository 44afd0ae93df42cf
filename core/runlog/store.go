// Package runlog persists one record per pipeline run and answers queries
// over them. Records can be kept in a JSONL file (optionally rotated) or in
// SQLite.
package runlog

import (
	"context"
	"fmt"
	"time"
)

// RunRecord captures the outcome of one pipeline run.
type RunRecord struct {
	RunID       string    `json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
	Validated   bool      `json:"validated"`
	Missing     []string  `json:"missing,omitempty"`
	ClassGroups []string  `json:"class_groups"`
	Files       []string  `json:"files,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	InputChars  int       `json:"input_chars"`
	Error       string    `json:"error,omitempty"`
}

// Query defines filters for retrieving records. Zero values match all.
type Query struct {
	Start      time.Time
	End        time.Time
	ClassGroup string
	Validated  *bool
	// Limit keeps the most recent records when positive.
	Limit int
}

// Match reports whether r satisfies every filter of q except Limit.
func (q Query) Match(r RunRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Validated != nil && r.Validated != *q.Validated {
		return false
	}
	if q.ClassGroup != "" {
		for _, g := range r.ClassGroups {
			if g == q.ClassGroup {
				return true
			}
		}
		return false
	}
	return true
}

func (q Query) limit(recs []RunRecord) []RunRecord {
	if q.Limit > 0 && len(recs) > q.Limit {
		return recs[len(recs)-q.Limit:]
	}
	return recs
}

// Store persists RunRecords and supports querying.
type Store interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q Query) ([]RunRecord, error)
	Close() error
}

// Options selects and configures a Store.
type Options struct {
	// Backend is "jsonl", "sqlite" or "none".
	Backend    string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Open creates the store described by opt. JSONL files rotate when
// MaxSizeMB is positive.
func Open(opt Options) (Store, error) {
	switch opt.Backend {
	case "none":
		return NopStore{}, nil
	case "sqlite":
		return NewSQLiteStore(opt.Path)
	case "", "jsonl":
		if opt.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(opt.Path, opt.MaxSizeMB, opt.MaxBackups, opt.MaxAgeDays)
		}
		return NewJSONLStore(opt.Path)
	}
	return nil, fmt.Errorf("unknown runlog backend %s", opt.Backend)
}

// NopStore drops records.
type NopStore struct{}

func (NopStore) Append(context.Context, RunRecord) error           { return nil }
func (NopStore) Query(context.Context, Query) ([]RunRecord, error) { return nil, nil }
func (NopStore) Close() error                                      { return nil }

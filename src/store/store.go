// Package store defines the interface for persisting verification history.
package store

import (
	"context"
	"time"
)

// Record is one completed verification. History is append-only and is never
// consulted to answer a verification; it exists for after-the-fact review.
type Record struct {
	RunID      int64
	Repo       string
	HeadSHA    string
	Verdict    string
	Conclusion string
	ExitCode   int
	Missing    []string
	Failed     []string
	ElapsedSec int
	CreatedAt  time.Time
}

// Store defines the interface for persisting verification records.
type Store interface {
	// SaveVerification appends one verification record
	SaveVerification(ctx context.Context, rec *Record) error

	// ListVerifications returns the most recent records for a repo,
	// newest first
	ListVerifications(ctx context.Context, repo string, limit int) ([]Record, error)

	// Close closes the store connection
	Close() error
}

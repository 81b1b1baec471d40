// Package store defines the persistence interface for generated interface
// candidates. It abstracts the hand-off of serializable candidate records so
// different sinks (local JSON Lines files, object storage, a database) can
// provide concrete implementations.
package store

import (
	"context"

	"intergen/pkg/domain"
)

// Store persists interface candidates produced by a generation run.
// Implementations must be safe for concurrent use: the sweep may run on a
// worker pool and candidates arrive from multiple goroutines.
type Store interface {
	// WriteCandidate persists one candidate record.
	WriteCandidate(ctx context.Context, c domain.Candidate) error

	// Close flushes and releases the underlying sink. After Close, the
	// instance must not be used.
	Close() error
}

package audit

import "context"

// Store is the append-only persistence contract for audit entries.
// Append never rejects on business grounds, only on storage failure.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	// ListRecent returns the most recent entries newest-first, bounded by limit.
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}

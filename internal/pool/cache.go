package pool

import "time"

// Entry is a cached value with an explicit fetch timestamp and TTL, so
// staleness is a pure predicate over a supplied instant instead of a hidden
// wall-clock read.
type Entry[T any] struct {
	Value     T
	FetchedAt time.Time
	TTL       time.Duration
}

// Stale reports whether the entry must be refetched as of now. The zero
// entry is always stale.
func (e Entry[T]) Stale(now time.Time) bool {
	if e.FetchedAt.IsZero() {
		return true
	}
	return now.Sub(e.FetchedAt) > e.TTL
}

// Fresh wraps a value fetched at the given instant.
func Fresh[T any](value T, fetchedAt time.Time, ttl time.Duration) Entry[T] {
	return Entry[T]{Value: value, FetchedAt: fetchedAt, TTL: ttl}
}

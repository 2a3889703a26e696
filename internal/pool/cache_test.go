package pool

import (
	"testing"
	"time"
)

func TestZeroEntryIsStale(t *testing.T) {
	var e Entry[int]
	if !e.Stale(time.Now()) {
		t.Fatal("zero entry must be stale")
	}
}

func TestEntryStaleness(t *testing.T) {
	fetched := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	e := Fresh(42, fetched, time.Minute)

	if e.Stale(fetched) {
		t.Fatal("entry must be fresh at fetch time")
	}
	if e.Stale(fetched.Add(time.Minute)) {
		t.Fatal("entry must be fresh exactly at the TTL boundary")
	}
	if !e.Stale(fetched.Add(time.Minute + time.Nanosecond)) {
		t.Fatal("entry must be stale past the TTL")
	}
	if e.Value != 42 {
		t.Fatalf("value lost: %d", e.Value)
	}
}

package pool

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aioreal/backend/internal/game"
)

type fakeLister struct {
	ai    []game.Image
	real  []game.Image
	err   error
	calls int
}

func (f *fakeLister) ListByClass(ctx context.Context, isAI bool) ([]game.Image, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if isAI {
		return f.ai, nil
	}
	return f.real, nil
}

func images(prefix string, isAI bool, n int) []game.Image {
	out := make([]game.Image, n)
	for i := range out {
		out[i] = game.Image{
			ID:   fmt.Sprintf("%s-%d", prefix, i),
			URL:  fmt.Sprintf("https://img/%s-%d.jpg", prefix, i),
			IsAI: isAI,
		}
	}
	return out
}

func TestDeckIsBalancedAndDistinct(t *testing.T) {
	lister := &fakeLister{ai: images("ai", true, 10), real: images("real", false, 10)}
	p := NewProvider(lister, clockwork.NewFakeClock(), time.Minute)

	deck, err := p.Deck(context.Background(), 12, 6)
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	if len(deck) != 12 {
		t.Fatalf("expected 12 images, got %d", len(deck))
	}

	seen := make(map[string]bool)
	aiCount := 0
	for _, img := range deck {
		if seen[img.ID] {
			t.Fatalf("duplicate image %s in deck", img.ID)
		}
		seen[img.ID] = true
		if img.IsAI {
			aiCount++
		}
	}
	if aiCount != 6 {
		t.Fatalf("expected 6 ai images, got %d", aiCount)
	}
}

func TestDeckRejectsUnbalancedSize(t *testing.T) {
	lister := &fakeLister{ai: images("ai", true, 10), real: images("real", false, 10)}
	p := NewProvider(lister, clockwork.NewFakeClock(), time.Minute)

	if _, err := p.Deck(context.Background(), 11, 6); err == nil {
		t.Fatal("odd deck size should be rejected")
	}
	if lister.calls != 0 {
		t.Fatal("invalid request should not hit storage")
	}
}

func TestDeckPoolTooSmall(t *testing.T) {
	lister := &fakeLister{ai: images("ai", true, 3), real: images("real", false, 10)}
	p := NewProvider(lister, clockwork.NewFakeClock(), time.Minute)

	_, err := p.Deck(context.Background(), 12, 6)
	if !errors.Is(err, ErrPoolTooSmall) {
		t.Fatalf("expected ErrPoolTooSmall, got %v", err)
	}
}

func TestDeckPropagatesStorageError(t *testing.T) {
	lister := &fakeLister{err: errors.New("db down")}
	p := NewProvider(lister, clockwork.NewFakeClock(), time.Minute)

	if _, err := p.Deck(context.Background(), 12, 6); err == nil {
		t.Fatal("storage failure should surface")
	}
}

func TestClassListsAreCachedUntilTTL(t *testing.T) {
	lister := &fakeLister{ai: images("ai", true, 10), real: images("real", false, 10)}
	clock := clockwork.NewFakeClock()
	p := NewProvider(lister, clock, time.Minute)

	ctx := context.Background()
	if _, err := p.Deck(ctx, 12, 6); err != nil {
		t.Fatalf("deck: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("expected 2 storage reads (one per class), got %d", lister.calls)
	}

	// Within the TTL the cached lists serve every deck.
	clock.Advance(30 * time.Second)
	if _, err := p.Deck(ctx, 12, 6); err != nil {
		t.Fatalf("deck: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("cached deck should not hit storage, got %d calls", lister.calls)
	}

	// Past the TTL both classes refresh.
	clock.Advance(time.Minute)
	if _, err := p.Deck(ctx, 12, 6); err != nil {
		t.Fatalf("deck: %v", err)
	}
	if lister.calls != 4 {
		t.Fatalf("expired cache should refetch both classes, got %d calls", lister.calls)
	}
}

func TestProviderDefaultsTTL(t *testing.T) {
	lister := &fakeLister{ai: images("ai", true, 10), real: images("real", false, 10)}
	p := NewProvider(lister, clockwork.NewFakeClock(), 0)
	if p.ttl != 60*time.Second {
		t.Fatalf("expected 60s default TTL, got %v", p.ttl)
	}
}

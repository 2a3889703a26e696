package pool

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aioreal/backend/internal/game"
)

// ErrPoolTooSmall is returned when a class has fewer images than one deck
// needs.
var ErrPoolTooSmall = errors.New("not enough images in pool")

// ImageLister reads the labeled image sets from storage.
type ImageLister interface {
	ListByClass(ctx context.Context, isAI bool) ([]game.Image, error)
}

// Provider assembles balanced, shuffled decks for sessions. The full class
// lists are cached with a TTL so the database is not hit on every game;
// images change rarely.
type Provider struct {
	repo  ImageLister
	clock clockwork.Clock
	ttl   time.Duration

	mu   sync.Mutex
	ai   Entry[[]game.Image]
	real Entry[[]game.Image]
}

func NewProvider(repo ImageLister, clock clockwork.Clock, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Provider{repo: repo, clock: clock, ttl: ttl}
}

// Deck returns a shuffled deck of rounds images: perClass drawn from each
// class without duplicates. rounds must equal 2*perClass.
func (p *Provider) Deck(ctx context.Context, rounds, perClass int) ([]game.Image, error) {
	if rounds != 2*perClass {
		return nil, fmt.Errorf("deck size %d does not split into 2x%d", rounds, perClass)
	}
	ai, real, err := p.classLists(ctx)
	if err != nil {
		return nil, err
	}
	if len(ai) < perClass || len(real) < perClass {
		return nil, fmt.Errorf("%w: have %d ai / %d real, need %d each",
			ErrPoolTooSmall, len(ai), len(real), perClass)
	}

	deck := make([]game.Image, 0, rounds)
	deck = append(deck, draw(ai, perClass)...)
	deck = append(deck, draw(real, perClass)...)
	rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck, nil
}

func (p *Provider) classLists(ctx context.Context) (ai, real []game.Image, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	if p.ai.Stale(now) || p.real.Stale(now) {
		aiList, err := p.repo.ListByClass(ctx, true)
		if err != nil {
			return nil, nil, fmt.Errorf("list ai images: %w", err)
		}
		realList, err := p.repo.ListByClass(ctx, false)
		if err != nil {
			return nil, nil, fmt.Errorf("list real images: %w", err)
		}
		p.ai = Fresh(aiList, now, p.ttl)
		p.real = Fresh(realList, now, p.ttl)
	}
	return p.ai.Value, p.real.Value, nil
}

// draw picks n distinct entries from list by shuffling a copy.
func draw(list []game.Image, n int) []game.Image {
	cp := make([]game.Image, len(list))
	copy(cp, list)
	rand.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
	return cp[:n]
}

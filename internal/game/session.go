package game

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidPhase    = errors.New("invalid phase for action")
	ErrEmptyUsername   = errors.New("username must not be empty")
)

// Emitter receives session events for delivery to the connected client.
type Emitter func(event string, payload any)

// ImageSource supplies one balanced, shuffled deck per session.
type ImageSource interface {
	Deck(ctx context.Context, rounds, perClass int) ([]Image, error)
}

// ScoreSink persists a finished session and returns its leaderboard rank.
type ScoreSink interface {
	SubmitScore(ctx context.Context, username, country string, sum Summary) (int, error)
}

// Session runs one play-through from registration to game over. All state
// is guarded by a single mutex; the round timer, countdown and feedback
// delay are the only asynchronous wake-ups besides client events, and every
// delayed callback is epoch-guarded so a stale timer can never resolve a
// round twice or leak into a later session.
type Session struct {
	ID        string
	CreatedAt time.Time

	cfg    Config
	clock  clockwork.Clock
	images ImageSource
	scores ScoreSink
	emit   Emitter

	mu           sync.Mutex
	phase        Phase
	username     string
	country      string
	deck         []Image
	current      int
	score        int
	streak       int
	results      []Result
	feedback     *Feedback
	summary      *Summary
	rank         *int
	epoch        int
	timer        *RoundTimer
	roundStarted time.Time
	startedAt    time.Time
}

func NewSession(id string, cfg Config, clock clockwork.Clock, images ImageSource, scores ScoreSink, emit Emitter) *Session {
	if emit == nil {
		emit = func(string, any) {}
	}
	return &Session{
		ID:        id,
		CreatedAt: clock.Now().UTC(),
		cfg:       cfg,
		clock:     clock,
		images:    images,
		scores:    scores,
		emit:      emit,
		phase:     PhaseRegistering,
		timer:     NewRoundTimer(clock, cfg.TickInterval),
	}
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak
}

func (s *Session) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *Session) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		return nil
	}
	sum := *s.summary
	return &sum
}

func (s *Session) Rank() *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rank == nil {
		return nil
	}
	r := *s.rank
	return &r
}

// Start registers the player and fetches the image deck. On a fetch failure
// the session returns to Registering untouched; no partial game is created.
func (s *Session) Start(ctx context.Context, username, country string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}

	s.mu.Lock()
	if s.phase != PhaseRegistering {
		s.mu.Unlock()
		return ErrInvalidPhase
	}
	s.username = username
	s.country = country
	s.phase = PhasePreloading
	s.mu.Unlock()
	s.emit("game:state", s.statePayload())

	deck, err := s.images.Deck(ctx, s.cfg.Rounds, s.cfg.PerClass)
	if err != nil {
		s.mu.Lock()
		s.phase = PhaseRegistering
		s.mu.Unlock()
		s.emit("game:state", s.statePayload())
		return err
	}

	s.mu.Lock()
	if s.phase != PhasePreloading {
		s.mu.Unlock()
		return ErrInvalidPhase
	}
	s.deck = deck
	urls := make([]string, len(deck))
	for i, img := range deck {
		urls[i] = img.URL
	}
	s.mu.Unlock()

	// Labels stay on the server; the client only sees URLs to preload.
	s.emit("game:pool", map[string]any{"urls": urls, "count": len(urls)})
	return nil
}

// Ready moves a preloaded session into the pre-game countdown. The client
// signals readiness once its asset preload barrier completes; a broken asset
// counts as loaded on the client so one dead URL cannot stall the game.
func (s *Session) Ready() error {
	s.mu.Lock()
	if s.phase != PhasePreloading || len(s.deck) == 0 {
		s.mu.Unlock()
		return ErrInvalidPhase
	}
	s.phase = PhaseCountdown
	e := s.epoch
	n := s.cfg.CountdownFrom
	s.mu.Unlock()

	s.emit("game:state", s.statePayload())
	s.countdownStep(n, e)
	return nil
}

func (s *Session) countdownStep(n, epoch int) {
	s.mu.Lock()
	if s.phase != PhaseCountdown || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	if n <= 0 {
		s.startedAt = s.clock.Now()
		s.beginRoundLocked(0)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.emit("countdown:tick", map[string]any{"n": n})
	s.clock.AfterFunc(time.Second, func() {
		s.countdownStep(n-1, epoch)
	})
}

// beginRoundLocked starts the timer for deck[idx]. Caller holds s.mu.
func (s *Session) beginRoundLocked(idx int) {
	s.current = idx
	s.phase = PhasePlaying
	s.feedback = nil
	s.roundStarted = s.clock.Now()
	img := s.deck[idx]
	e := s.epoch

	s.timer.Start(s.cfg.RoundTime,
		func(remaining float64) {
			s.emit("timer:tick", map[string]any{"remaining": remaining})
		},
		func() {
			s.resolve(nil, e)
		},
	)

	s.emit("round:state", map[string]any{
		"index": idx,
		"total": len(s.deck),
		"url":   img.URL,
	})
}

// Answer records the player's call for the current round. The zero round
// outcome race (answer vs. timer expiry) is settled first-writer-wins by the
// epoch check in resolve.
func (s *Session) Answer(saidAI bool) error {
	s.mu.Lock()
	if s.phase != PhasePlaying {
		s.mu.Unlock()
		return ErrInvalidPhase
	}
	e := s.epoch
	s.mu.Unlock()
	s.resolve(&saidAI, e)
	return nil
}

func (s *Session) resolve(answer *bool, epoch int) {
	s.mu.Lock()
	if s.phase != PhasePlaying || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.timer.Cancel()
	s.epoch++

	duration := s.cfg.RoundTime.Seconds()
	timeLeft := 0.0
	if answer != nil {
		timeLeft = duration - s.clock.Since(s.roundStarted).Seconds()
		if timeLeft < 0 {
			timeLeft = 0
		}
		if timeLeft > duration {
			timeLeft = duration
		}
	}

	img := s.deck[s.current]
	correct := IsCorrect(answer, img.IsAI)
	points := s.cfg.Scoring.ComputePoints(correct, timeLeft, duration, s.streak)
	s.score += points
	s.streak = NextStreak(correct, s.streak)

	s.results = append(s.results, Result{
		ImageID:    img.ID,
		URL:        img.URL,
		IsAI:       img.IsAI,
		UserAnswer: answer,
		Correct:    correct,
		TimeLeft:   timeLeft,
	})

	fb := Feedback{
		Correct:    correct,
		ActualIsAI: img.IsAI,
		Points:     points,
		Score:      s.score,
		Streak:     s.streak,
		TimeLeft:   timeLeft,
	}
	s.feedback = &fb
	s.phase = PhaseFeedback
	e := s.epoch
	s.mu.Unlock()

	s.emit("round:feedback", fb)
	s.clock.AfterFunc(s.cfg.FeedbackDelay, func() {
		s.advance(e)
	})
}

func (s *Session) advance(epoch int) {
	s.mu.Lock()
	if s.phase != PhaseFeedback || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	if s.current+1 < len(s.deck) {
		s.beginRoundLocked(s.current + 1)
		s.mu.Unlock()
		return
	}
	s.finishLocked()
}

// finishLocked transitions to GameOver and kicks off the best-effort score
// submission. Caller holds s.mu; the lock is released before returning.
func (s *Session) finishLocked() {
	s.phase = PhaseGameOver
	sum := s.summarize()
	s.summary = &sum
	username, country := s.username, s.country
	s.mu.Unlock()

	// The final card is shown immediately; the rank arrives when (and if)
	// the submission succeeds.
	s.emit("game:over", map[string]any{"summary": sum, "rank": nil})

	go func() {
		rank, err := s.scores.SubmitScore(context.Background(), username, country, sum)
		if err != nil {
			log.Error().Err(err).Str("session", s.ID).Msg("score submission failed")
			s.emit("game:rank", map[string]any{"rank": nil})
			return
		}
		s.mu.Lock()
		s.rank = &rank
		s.mu.Unlock()
		s.emit("game:rank", map[string]any{"rank": rank})
	}()
}

// summarize computes the aggregate stats of the finished run. Caller holds
// s.mu. A timed-out round counts as the full round duration in avgTime.
func (s *Session) summarize() Summary {
	duration := s.cfg.RoundTime.Seconds()
	correct := 0
	elapsed := 0.0
	for _, r := range s.results {
		if r.Correct {
			correct++
		}
		elapsed += duration - r.TimeLeft
	}
	n := len(s.results)
	sum := Summary{
		TotalScore:   s.score,
		CorrectCount: correct,
		TotalImages:  n,
	}
	if n > 0 {
		sum.Accuracy = math.Round(float64(correct)/float64(n)*100*100) / 100
		sum.AvgTime = math.Round(elapsed/float64(n)*100) / 100
	}
	return sum
}

// Reset tears the session down to Registering for a fresh play-through.
// Bumping the epoch orphans every outstanding timer and delayed callback.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.Cancel()
	s.epoch++
	s.phase = PhaseRegistering
	s.deck = nil
	s.current = 0
	s.score = 0
	s.streak = 0
	s.results = nil
	s.feedback = nil
	s.summary = nil
	s.rank = nil
}

func (s *Session) statePayload() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"phase":   string(s.phase),
		"index":   s.current,
		"total":   len(s.deck),
		"score":   s.score,
		"streak":  s.streak,
		"player":  s.username,
		"country": s.country,
	}
}

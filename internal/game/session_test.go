package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// Short durations keep the full-playthrough tests fast while leaving wide
// margins for scheduling jitter.
func testConfig() Config {
	return Config{
		Rounds:        2,
		PerClass:      1,
		RoundTime:     250 * time.Millisecond,
		TickInterval:  10 * time.Millisecond,
		CountdownFrom: 1,
		FeedbackDelay: 20 * time.Millisecond,
		Scoring:       DefaultScoring(),
	}
}

type stubImages struct {
	mu   sync.Mutex
	deck []Image
	err  error
}

func (s *stubImages) Deck(ctx context.Context, rounds, perClass int) ([]Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Image, len(s.deck))
	copy(out, s.deck)
	return out, nil
}

type stubScores struct {
	mu        sync.Mutex
	rank      int
	err       error
	submitted []Summary
	notify    chan struct{}
}

func (s *stubScores) SubmitScore(ctx context.Context, username, country string, sum Summary) (int, error) {
	s.mu.Lock()
	s.submitted = append(s.submitted, sum)
	rank, err := s.rank, s.err
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify <- struct{}{}
	}
	return rank, err
}

type recordedEvent struct {
	name    string
	payload any
}

type recorder struct {
	ch chan recordedEvent
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan recordedEvent, 256)}
}

func (r *recorder) emit(event string, payload any) {
	r.ch <- recordedEvent{name: event, payload: payload}
}

// next consumes events until one with the given name arrives.
func (r *recorder) next(t *testing.T, name string) recordedEvent {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-r.ch:
			if ev.name == name {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event %q", name)
		}
	}
}

func testDeck() []Image {
	return []Image{
		{ID: "img-1", URL: "https://img/1.jpg", IsAI: true},
		{ID: "img-2", URL: "https://img/2.jpg", IsAI: false},
	}
}

func newTestSession(rec *recorder, images ImageSource, scores ScoreSink) *Session {
	return NewSession("test", testConfig(), clockwork.NewRealClock(), images, scores, rec.emit)
}

func TestSessionRejectsEmptyUsername(t *testing.T) {
	rec := newRecorder()
	s := newTestSession(rec, &stubImages{deck: testDeck()}, &stubScores{})

	if err := s.Start(context.Background(), "   ", "Germany"); err != ErrEmptyUsername {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
	if s.Phase() != PhaseRegistering {
		t.Fatalf("session should stay in Registering, got %s", s.Phase())
	}
}

func TestSessionPoolFailureReturnsToRegistering(t *testing.T) {
	rec := newRecorder()
	images := &stubImages{err: errors.New("db down")}
	s := newTestSession(rec, images, &stubScores{})

	if err := s.Start(context.Background(), "Alice", ""); err == nil {
		t.Fatal("expected pool fetch error")
	}
	if s.Phase() != PhaseRegistering {
		t.Fatalf("failed preload should return to Registering, got %s", s.Phase())
	}

	// The same session can start cleanly once the pool is reachable.
	images.mu.Lock()
	images.err = nil
	images.deck = testDeck()
	images.mu.Unlock()
	if err := s.Start(context.Background(), "Alice", ""); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if s.Phase() != PhasePreloading {
		t.Fatalf("expected Preloading, got %s", s.Phase())
	}
}

func TestSessionReadyRequiresPreloading(t *testing.T) {
	rec := newRecorder()
	s := newTestSession(rec, &stubImages{deck: testDeck()}, &stubScores{})

	if err := s.Ready(); err != ErrInvalidPhase {
		t.Fatalf("Ready before Start should fail, got %v", err)
	}
	if err := s.Answer(true); err != ErrInvalidPhase {
		t.Fatalf("Answer before Playing should fail, got %v", err)
	}
}

func TestSessionFullPlaythrough(t *testing.T) {
	rec := newRecorder()
	scores := &stubScores{rank: 3, notify: make(chan struct{}, 1)}
	s := newTestSession(rec, &stubImages{deck: testDeck()}, scores)

	if err := s.Start(context.Background(), "Alice", "Germany"); err != nil {
		t.Fatalf("start: %v", err)
	}
	rec.next(t, "game:pool")
	if err := s.Ready(); err != nil {
		t.Fatalf("ready: %v", err)
	}
	rec.next(t, "countdown:tick")

	// Round 1: correct answer (img-1 is AI).
	rec.next(t, "round:state")
	if err := s.Answer(true); err != nil {
		t.Fatalf("answer round 1: %v", err)
	}
	fb1 := rec.next(t, "round:feedback").payload.(Feedback)
	if !fb1.Correct {
		t.Fatal("round 1 should be correct")
	}
	if fb1.Points <= 0 {
		t.Fatalf("correct answer should score points, got %d", fb1.Points)
	}
	if fb1.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", fb1.Streak)
	}
	if !fb1.ActualIsAI {
		t.Fatal("feedback should reveal the true label")
	}

	// Round 2: wrong answer (img-2 is real, we say AI).
	rec.next(t, "round:state")
	if err := s.Answer(true); err != nil {
		t.Fatalf("answer round 2: %v", err)
	}
	fb2 := rec.next(t, "round:feedback").payload.(Feedback)
	if fb2.Correct {
		t.Fatal("round 2 should be incorrect")
	}
	if fb2.Points != 0 {
		t.Fatalf("miss should score 0, got %d", fb2.Points)
	}
	if fb2.Streak != 0 {
		t.Fatalf("miss should reset streak, got %d", fb2.Streak)
	}

	over := rec.next(t, "game:over").payload.(map[string]any)
	sum := over["summary"].(Summary)
	if sum.TotalImages != 2 || sum.CorrectCount != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.TotalScore != fb1.Points+fb2.Points {
		t.Fatalf("total score %d should equal awarded points %d", sum.TotalScore, fb1.Points+fb2.Points)
	}
	if sum.Accuracy != 50 {
		t.Fatalf("expected 50%% accuracy, got %v", sum.Accuracy)
	}

	<-scores.notify
	rank := rec.next(t, "game:rank").payload.(map[string]any)["rank"]
	if rank != 3 {
		t.Fatalf("expected rank 3, got %v", rank)
	}

	results := s.Results()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].UserAnswer == nil || !*results[0].UserAnswer {
		t.Fatal("round 1 answer should be recorded as AI")
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("expected GameOver, got %s", s.Phase())
	}
}

func TestSessionTimeoutResolvesRound(t *testing.T) {
	rec := newRecorder()
	s := newTestSession(rec, &stubImages{deck: testDeck()}, &stubScores{})

	if err := s.Start(context.Background(), "Alice", ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Ready(); err != nil {
		t.Fatalf("ready: %v", err)
	}

	rec.next(t, "round:state")
	// No answer; the round timer must force the resolution.
	fb := rec.next(t, "round:feedback").payload.(Feedback)
	if fb.Correct {
		t.Fatal("timeout must be incorrect")
	}
	if fb.Points != 0 {
		t.Fatalf("timeout must score 0, got %d", fb.Points)
	}
	if fb.TimeLeft != 0 {
		t.Fatalf("timeout should record zero time left, got %v", fb.TimeLeft)
	}

	results := s.Results()
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].UserAnswer != nil {
		t.Fatal("timeout should record a nil answer")
	}
}

func TestSessionRoundResolvesAtMostOnce(t *testing.T) {
	rec := newRecorder()
	scores := &stubScores{}
	s := newTestSession(rec, &stubImages{deck: testDeck()}, scores)

	if err := s.Start(context.Background(), "Alice", ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Ready(); err != nil {
		t.Fatalf("ready: %v", err)
	}

	rec.next(t, "round:state")
	if err := s.Answer(false); err != nil {
		t.Fatalf("answer: %v", err)
	}
	rec.next(t, "round:feedback")

	// Wait well past the original round deadline: a stale expiry would
	// append a second result for round one.
	time.Sleep(400 * time.Millisecond)
	results := s.Results()
	if results[0].UserAnswer == nil {
		t.Fatal("recorded answer was overwritten by a stale timeout")
	}
	for i := 1; i < len(results); i++ {
		if results[i].ImageID == results[0].ImageID {
			t.Fatal("round resolved twice")
		}
	}
}

func TestSessionSubmitFailureLeavesRankUnset(t *testing.T) {
	rec := newRecorder()
	scores := &stubScores{err: errors.New("db down"), notify: make(chan struct{}, 1)}
	s := newTestSession(rec, &stubImages{deck: testDeck()}, scores)

	if err := s.Start(context.Background(), "Alice", ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Ready(); err != nil {
		t.Fatalf("ready: %v", err)
	}
	for i := 0; i < 2; i++ {
		rec.next(t, "round:state")
		_ = s.Answer(true)
		rec.next(t, "round:feedback")
	}
	rec.next(t, "game:over")
	<-scores.notify

	rank := rec.next(t, "game:rank").payload.(map[string]any)["rank"]
	if rank != nil {
		t.Fatalf("failed submission should leave rank nil, got %v", rank)
	}
	if s.Rank() != nil {
		t.Fatal("session rank should be unset")
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("session should stay in GameOver, got %s", s.Phase())
	}
}

func TestSessionResetClearsState(t *testing.T) {
	rec := newRecorder()
	s := newTestSession(rec, &stubImages{deck: testDeck()}, &stubScores{})

	if err := s.Start(context.Background(), "Alice", ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Ready(); err != nil {
		t.Fatalf("ready: %v", err)
	}
	rec.next(t, "round:state")
	_ = s.Answer(true)
	rec.next(t, "round:feedback")

	s.Reset()
	if s.Phase() != PhaseRegistering {
		t.Fatalf("reset should return to Registering, got %s", s.Phase())
	}
	if s.Score() != 0 || s.Streak() != 0 || len(s.Results()) != 0 {
		t.Fatal("reset should clear score, streak and results")
	}

	// A new playthrough starts clean.
	if err := s.Start(context.Background(), "Alice", ""); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.Phase() != PhasePreloading {
		t.Fatalf("expected Preloading after restart, got %s", s.Phase())
	}
}

func TestSummarize(t *testing.T) {
	s := newTestSession(newRecorder(), &stubImages{}, &stubScores{})
	s.cfg.RoundTime = 5 * time.Second
	yes := true
	s.results = []Result{
		{Correct: true, UserAnswer: &yes, TimeLeft: 4},
		{Correct: false, UserAnswer: &yes, TimeLeft: 2},
		{Correct: false, UserAnswer: nil, TimeLeft: 0},
	}
	s.score = 180

	sum := s.summarize()
	if sum.TotalScore != 180 {
		t.Fatalf("expected total 180, got %d", sum.TotalScore)
	}
	if sum.CorrectCount != 1 || sum.TotalImages != 3 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
	if sum.Accuracy != 33.33 {
		t.Fatalf("expected accuracy 33.33, got %v", sum.Accuracy)
	}
	// Elapsed: 1s + 3s + 5s over three rounds.
	if sum.AvgTime != 3 {
		t.Fatalf("expected avg time 3, got %v", sum.AvgTime)
	}
}

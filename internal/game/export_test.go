package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
)

func finishedSession() *Session {
	s := NewSession("export-test", testConfig(), clockwork.NewRealClock(), &stubImages{}, &stubScores{}, nil)
	yes, no := true, false
	s.username = "Alice"
	s.country = "Germany"
	s.phase = PhaseGameOver
	s.results = []Result{
		{ImageID: "img-1", IsAI: true, UserAnswer: &yes, Correct: true, TimeLeft: 3.5},
		{ImageID: "img-2", IsAI: false, UserAnswer: &yes, Correct: false, TimeLeft: 1.2},
		{ImageID: "img-3", IsAI: true, UserAnswer: &no, Correct: false, TimeLeft: 0.8},
		{ImageID: "img-4", IsAI: false, UserAnswer: nil, Correct: false, TimeLeft: 0},
	}
	s.score = 180
	sum := s.summarize()
	s.summary = &sum
	rank := 7
	s.rank = &rank
	return s
}

func TestExportSessionWritesBlock(t *testing.T) {
	s := finishedSession()
	filename := filepath.Join(t.TempDir(), "results", "out.txt")

	if err := ExportSession(s, filename); err != nil {
		t.Fatalf("export: %v", err)
	}

	b, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	out := string(b)

	for _, want := range []string{
		"Session export-test",
		"Player: Alice (Germany)",
		"guessed AI, was AI -> HIT",
		"guessed AI, was Real -> MISS",
		"guessed Real, was AI -> MISS",
		"guessed no answer, was Real -> MISS",
		"Score: 180  Correct: 1/4",
		"Leaderboard rank: #7",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing %q in:\n%s", want, out)
		}
	}
}

func TestExportSessionAppends(t *testing.T) {
	s := finishedSession()
	filename := filepath.Join(t.TempDir(), "out.txt")

	if err := ExportSession(s, filename); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if err := ExportSession(s, filename); err != nil {
		t.Fatalf("second export: %v", err)
	}

	b, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got := strings.Count(string(b), "Session export-test"); got != 2 {
		t.Fatalf("expected 2 appended blocks, got %d", got)
	}
}

func TestExportSessionRequiresFinishedGame(t *testing.T) {
	s := NewSession("unfinished", testConfig(), clockwork.NewRealClock(), &stubImages{}, &stubScores{}, nil)
	filename := filepath.Join(t.TempDir(), "out.txt")

	if err := ExportSession(s, filename); err != ErrInvalidPhase {
		t.Fatalf("expected ErrInvalidPhase, got %v", err)
	}
	if _, err := os.Stat(filename); !os.IsNotExist(err) {
		t.Fatal("unfinished session must not create a file")
	}
}

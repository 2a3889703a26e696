package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportSession appends a finished session's results to a text file, one
// block per play-through. Best-effort reporting for event setups running
// the game on a shared screen.
func ExportSession(s *Session, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseGameOver || s.summary == nil {
		return ErrInvalidPhase
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("AI or Real? - Session %s\n", s.ID))
	sb.WriteString(fmt.Sprintf("Player: %s", s.username))
	if s.country != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", s.country))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Finished: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(strings.Repeat("=", 50) + "\n")

	for i, r := range s.results {
		answer := "no answer"
		if r.UserAnswer != nil {
			if *r.UserAnswer {
				answer = "AI"
			} else {
				answer = "Real"
			}
		}
		actual := "Real"
		if r.IsAI {
			actual = "AI"
		}
		verdict := "MISS"
		if r.Correct {
			verdict = "HIT"
		}
		sb.WriteString(fmt.Sprintf("Round %2d: guessed %s, was %s -> %s (%.2fs left)\n",
			i+1, answer, actual, verdict, r.TimeLeft))
	}

	sum := s.summary
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	sb.WriteString(fmt.Sprintf("Score: %d  Correct: %d/%d  Accuracy: %.2f%%  Avg time: %.2fs\n",
		sum.TotalScore, sum.CorrectCount, sum.TotalImages, sum.Accuracy, sum.AvgTime))
	if s.rank != nil {
		sb.WriteString(fmt.Sprintf("Leaderboard rank: #%d\n", *s.rank))
	}
	sb.WriteString("\n")

	if _, err := file.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}

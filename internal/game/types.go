package game

import (
	"time"
)

type Phase string

const (
	PhaseRegistering Phase = "Registering"
	PhasePreloading  Phase = "Preloading"
	PhaseCountdown   Phase = "Countdown"
	PhasePlaying     Phase = "Playing"
	PhaseFeedback    Phase = "Feedback"
	PhaseGameOver    Phase = "GameOver"
)

// Image is one labeled entry of the game deck.
type Image struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	IsAI bool   `json:"isAi"`
}

// Result is the recorded outcome of one resolved round. UserAnswer is nil
// when the round timed out without an answer.
type Result struct {
	ImageID    string  `json:"imageId"`
	URL        string  `json:"url"`
	IsAI       bool    `json:"isAi"`
	UserAnswer *bool   `json:"userAnswer"`
	Correct    bool    `json:"correct"`
	TimeLeft   float64 `json:"timeLeft"`
}

// Config holds the tunables of one session. The scoring constants vary
// between deployments, so they travel with the config instead of being
// hardcoded in the engine.
type Config struct {
	Rounds        int           `json:"rounds"`
	PerClass      int           `json:"perClass"` // images drawn from each class
	RoundTime     time.Duration `json:"roundTime"`
	TickInterval  time.Duration `json:"tickInterval"`
	CountdownFrom int           `json:"countdownFrom"`
	FeedbackDelay time.Duration `json:"feedbackDelay"`
	Scoring       ScoringConfig `json:"scoring"`
}

// DefaultConfig is the shipped game setup: 12 images (6 per class),
// 5 seconds per image, 3-2-1 countdown, 1.2s feedback flash.
func DefaultConfig() Config {
	return Config{
		Rounds:        12,
		PerClass:      6,
		RoundTime:     5 * time.Second,
		TickInterval:  50 * time.Millisecond,
		CountdownFrom: 3,
		FeedbackDelay: 1200 * time.Millisecond,
		Scoring:       DefaultScoring(),
	}
}

// Summary aggregates a finished session for score submission.
type Summary struct {
	TotalScore   int     `json:"totalScore"`
	CorrectCount int     `json:"correctCount"`
	TotalImages  int     `json:"totalImages"`
	Accuracy     float64 `json:"accuracy"`
	AvgTime      float64 `json:"avgTime"`
}

// Feedback is the per-round reveal shown between rounds.
type Feedback struct {
	Correct    bool    `json:"correct"`
	ActualIsAI bool    `json:"actualIsAi"`
	Points     int     `json:"points"`
	Score      int     `json:"score"`
	Streak     int     `json:"streak"`
	TimeLeft   float64 `json:"timeLeft"`
}

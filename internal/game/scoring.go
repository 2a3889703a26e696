package game

import "math"

// ScoringConfig carries the point constants for one session. Earlier
// revisions of the game shipped slightly different numbers, so the engine
// never hardcodes them.
type ScoringConfig struct {
	BasePoints    int     `json:"basePoints"`
	SpeedBonusMax int     `json:"speedBonusMax"`
	StreakStep    float64 `json:"streakStep"`
}

func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		BasePoints:    100,
		SpeedBonusMax: 100,
		StreakStep:    0.25,
	}
}

// IsCorrect reports whether the answer matches the image label. A nil
// answer (timeout) is never correct.
func IsCorrect(answer *bool, isAI bool) bool {
	return answer != nil && *answer == isAI
}

// ComputePoints maps one round outcome to points. Incorrect rounds score
// zero. Correct rounds earn the base plus a speed bonus proportional to the
// remaining time, multiplied by 1 + streakBefore*StreakStep.
func (c ScoringConfig) ComputePoints(correct bool, timeLeft, duration float64, streakBefore int) int {
	if !correct || duration <= 0 {
		return 0
	}
	if timeLeft < 0 {
		timeLeft = 0
	}
	if timeLeft > duration {
		timeLeft = duration
	}
	speedBonus := math.Round(timeLeft / duration * float64(c.SpeedBonusMax))
	multiplier := 1 + float64(streakBefore)*c.StreakStep
	return int(math.Round((float64(c.BasePoints) + speedBonus) * multiplier))
}

// NextStreak returns the streak counter after a round: +1 on a correct
// answer, reset to zero on anything else.
func NextStreak(correct bool, before int) int {
	if correct {
		return before + 1
	}
	return 0
}

// internal/scoring/scoring.go
//
// Score calculation for a solved puzzle.
// Pure function of (elapsed time, hints used, difficulty, streak, active
// reward multiplier); returns every intermediate term so the UI can render
// the full breakdown. No state, no side effects.

package scoring

import "math"

const (
	basePoints  = 100
	noHintBonus = 100
	hintCost    = 20
)

// Breakdown itemizes how a puzzle score was computed.
type Breakdown struct {
	Base                 int     `json:"base"`
	TimeBonus            int     `json:"timeBonus"`
	TimeLabel            string  `json:"timeLabel,omitempty"`
	HintsUsed            int     `json:"hintsUsed"`
	HintPenalty          int     `json:"hintPenalty"`
	NoHintBonus          int     `json:"noHintBonus"`
	Subtotal             int     `json:"subtotal"`
	Difficulty           string  `json:"difficulty"`
	DifficultyLabel      string  `json:"difficultyLabel"`
	DifficultyMultiplier float64 `json:"difficultyMultiplier"`
	StreakMultiplier     float64 `json:"streakMultiplier"`
	RewardMultiplier     float64 `json:"rewardMultiplier"`
	TotalMultiplier      float64 `json:"totalMultiplier"`
	Total                int     `json:"total"`
}

// StreakMultiplier grants 10% per consecutive day, capped at 2x.
func StreakMultiplier(streak int) float64 {
	return 1 + math.Min(float64(streak)*0.1, 1.0)
}

// Score computes the full breakdown for a solve.
// elapsedSeconds is time from puzzle load to the correct submission.
func Score(elapsedSeconds, hintsUsed int, difficulty string, streak int, rewardMultiplier float64) Breakdown {
	var timeBonus int
	var timeLabel string
	switch {
	case elapsedSeconds < 10:
		timeBonus, timeLabel = 50, "Speed Bonus (under 10s)"
	case elapsedSeconds < 30:
		timeBonus, timeLabel = 30, "Speed Bonus (under 30s)"
	case elapsedSeconds < 60:
		timeBonus, timeLabel = 10, "Speed Bonus (under 60s)"
	}

	bonus := 0
	if hintsUsed == 0 {
		bonus = noHintBonus
	}

	// The penalty can never take back more than base+time earned.
	penalty := hintsUsed * hintCost
	if maxPenalty := basePoints + timeBonus; penalty > maxPenalty {
		penalty = maxPenalty
	}

	subtotal := basePoints + timeBonus - penalty + bonus
	if subtotal < 0 {
		subtotal = 0
	}

	diffMult, diffLabel := difficultyMultiplier(difficulty)
	streakMult := StreakMultiplier(streak)
	if rewardMultiplier < 1 {
		rewardMultiplier = 1
	}
	totalMult := diffMult * streakMult * rewardMultiplier

	return Breakdown{
		Base:                 basePoints,
		TimeBonus:            timeBonus,
		TimeLabel:            timeLabel,
		HintsUsed:            hintsUsed,
		HintPenalty:          penalty,
		NoHintBonus:          bonus,
		Subtotal:             subtotal,
		Difficulty:           difficulty,
		DifficultyLabel:      diffLabel,
		DifficultyMultiplier: diffMult,
		StreakMultiplier:     streakMult,
		RewardMultiplier:     rewardMultiplier,
		TotalMultiplier:      totalMult,
		Total:                int(math.Floor(float64(subtotal) * totalMult)),
	}
}

func difficultyMultiplier(difficulty string) (float64, string) {
	switch difficulty {
	case "medium":
		return 1.5, "Medium (1.5x)"
	case "hard":
		return 2, "Hard (2x)"
	default:
		return 1, "Easy"
	}
}

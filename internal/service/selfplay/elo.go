package selfplay

import "math"

const (
	kFactor        = 32.0
	startingRating = 1200.0
)

// expectedScore is the Elo win expectancy of a rating against b.
func expectedScore(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (b-a)/400.0))
}

// updateRatings applies one game to both sides. score is the AI side's
// result: 1 for a win, 0.5 for a draw, 0 for a loss.
func updateRatings(ai, player, score float64) (float64, float64) {
	delta := kFactor * (score - expectedScore(ai, player))
	return ai + delta, player - delta
}

// Package rating folds a feedback signal into an Elo-style reputation score.
//
// There is no opponent: the expected score is the fixed baseline 0.5 and the
// observed score blends the text sentiment with the star rating equally.
package rating

import (
	"math"

	"tukerank-backend/internal/sentiment"
)

const (
	// K is the update magnitude.
	K = 32
	// ExpectedScore is the baseline the observed score is compared against.
	ExpectedScore = 0.5
	// MaxStars is the top of the star scale.
	MaxStars = 5
)

// SentimentScore maps a label onto [0, 1]. Unknown labels count as neutral.
func SentimentScore(label sentiment.Label) float64 {
	switch label {
	case sentiment.Positive:
		return 1.0
	case sentiment.Negative:
		return 0.0
	default:
		return 0.5
	}
}

// ResultScore blends sentiment and stars. Stars are not range-checked, so an
// out-of-range rating yields a score outside [0, 1].
func ResultScore(label sentiment.Label, stars float64) float64 {
	return (SentimentScore(label) + stars/MaxStars) / 2
}

// Update returns the new rating and its difference from current.
// Rounding is half-to-even so persisted values are reproducible.
func Update(current int, label sentiment.Label, stars float64) (next, delta int) {
	next = int(math.RoundToEven(float64(current) + K*(ResultScore(label, stars)-ExpectedScore)))
	return next, next - current
}

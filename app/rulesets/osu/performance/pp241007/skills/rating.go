package skills

import "math"

// DefaultDifficultyToPerformance converts a skill's star rating to base
// performance points.
func DefaultDifficultyToPerformance(difficulty float64) float64 {
	return math.Pow(5.0*max(1.0, difficulty/0.0675)-4.0, 3.0) / 100000.0
}

// FlashlightDifficultyToPerformance uses a simpler quadratic curve, the
// flashlight rating already grows slowly.
func FlashlightDifficultyToPerformance(difficulty float64) float64 {
	return 25.0 * math.Pow(difficulty, 2.0)
}

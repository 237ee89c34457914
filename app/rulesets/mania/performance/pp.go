package performance

import (
	"math"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/rulesets/api"
)

const ppBaseMultiplier = 8.0

// PPv2 calculates mania performance points with the current formula
type PPv2 struct {
	attribs api.Attributes

	score api.ScoreStatistics

	diff *difficulty.Difficulty
}

func NewPPCalculator() api.IPerformanceCalculator {
	return &PPv2{}
}

func (pp *PPv2) Calculate(attribs api.Attributes, score api.ScoreStatistics, diff *difficulty.Difficulty) api.PPv2Results {
	pp.attribs = attribs
	pp.diff = diff
	pp.score = score

	multiplier := ppBaseMultiplier

	if diff.CheckModActive(difficulty.NoFail) {
		multiplier *= 0.75
	}

	if diff.CheckModActive(difficulty.Easy) {
		multiplier *= 0.5
	}

	diffValue := pp.computeDifficultyValue() * multiplier

	results := api.PPv2Results{
		Aim:        -1,
		Speed:      diffValue / multiplier,
		Acc:        -1,
		Flashlight: -1,
		Total:      diffValue,
	}

	return results
}

func (pp *PPv2) computeDifficultyValue() float64 {
	difficultyValue := math.Pow(max(pp.attribs.Total-0.15, 0.05), 2.2) * // Star rating to pp curve
		max(0, 5*pp.customAccuracy()-4) * // From 80% accuracy, 1/20th of total pp is awarded per additional 1% accuracy
		(1 + 0.1*min(1, float64(pp.totalHits())/1500)) // Length bonus, capped at 1500 notes

	return difficultyValue
}

func (pp *PPv2) totalHits() int {
	return pp.score.Perfect + pp.score.Great + pp.score.Good + pp.score.Ok + pp.score.Meh + pp.score.Miss
}

func (pp *PPv2) customAccuracy() float64 {
	hits := pp.totalHits()
	if hits == 0 {
		return 0
	}

	return float64(pp.score.Perfect*320+pp.score.Great*300+pp.score.Good*200+pp.score.Ok*100+pp.score.Meh*50) / float64(hits*320)
}

package performance

import (
	"math"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/rulesets/api"
)

// PPv2 implements the catch performance formula. Fruits and droplets decide
// combo and misses, tiny droplets only feed into accuracy.
type PPv2 struct {
	attribs api.Attributes

	score api.ScoreStatistics

	diff *difficulty.Difficulty
}

func NewPPCalculator() api.IPerformanceCalculator {
	return &PPv2{}
}

func (pp *PPv2) Calculate(attribs api.Attributes, score api.ScoreStatistics, diff *difficulty.Difficulty) api.PPv2Results {
	attribs.MaxCombo = max(1, attribs.MaxCombo)

	if score.MaxCombo < 0 {
		score.MaxCombo = attribs.MaxCombo
	}

	if score.Great < 0 {
		score.Great = attribs.MaxCombo - score.LargeTickHit - score.Miss
	}

	pp.attribs = attribs
	pp.score = score
	pp.diff = diff

	// fruits + droplets, tiny droplets don't count towards length
	numTotalHits := float64(score.Great + score.LargeTickHit + score.Miss)

	value := math.Pow(5.0*max(1.0, attribs.Total/0.0049)-4.0, 2.0) / 100000.0

	// Longer maps are worth more
	lengthBonus := 0.95 + 0.3*min(1.0, numTotalHits/2500.0)
	if numTotalHits > 2500 {
		lengthBonus += math.Log10(numTotalHits/2500.0) * 0.475
	}

	value *= lengthBonus

	value *= math.Pow(0.97, float64(score.Miss))

	// Combo scaling
	if attribs.MaxCombo > 0 {
		value *= min(math.Pow(float64(score.MaxCombo), 0.8)/math.Pow(float64(attribs.MaxCombo), 0.8), 1.0)
	}

	approachRate := diff.ARReal
	approachRateFactor := 1.0

	if approachRate > 9.0 {
		approachRateFactor += 0.1 * (approachRate - 9.0)
	}

	if approachRate > 10.0 {
		approachRateFactor += 0.1 * (approachRate - 10.0)
	}

	if approachRate < 8.0 {
		approachRateFactor += 0.025 * (8.0 - approachRate)
	}

	value *= approachRateFactor

	if diff.Mods.Active(difficulty.Hidden) {
		// Hiddens gives almost nothing on max approach rate, and more the lower it is
		if approachRate <= 10.0 {
			value *= 1.05 + 0.075*(10.0-approachRate)
		} else if approachRate > 10.0 && approachRate < 11.0 {
			value *= 1.01 + 0.04*(11.0-approachRate)
		}
	}

	if diff.Mods.Active(difficulty.Flashlight) {
		value *= 1.35 * lengthBonus
	}

	value *= math.Pow(pp.calculateAccuracy(), 5.5)

	if diff.Mods.Active(difficulty.NoFail) {
		value *= 0.90
	}

	return api.PPv2Results{
		Aim:                value,
		Total:              value,
		EffectiveMissCount: float64(score.Miss),
	}
}

func (pp *PPv2) calculateAccuracy() float64 {
	caught := pp.score.Great + pp.score.LargeTickHit + pp.score.SmallTickHit
	total := caught + pp.score.Miss + pp.score.SmallTickMiss

	if total == 0 {
		return 0
	}

	return float64(caught) / float64(total)
}

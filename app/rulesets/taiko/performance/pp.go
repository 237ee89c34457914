package performance

import (
	"math"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/rulesets/api"
)

// PPv2 implements the classic two-part taiko formula: a strain value from
// the star rating and an accuracy value from the rate-adjusted hit window.
type PPv2 struct {
	attribs api.Attributes

	score api.ScoreStatistics

	diff *difficulty.Difficulty

	totalHits int
	accuracy  float64
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
		score.Great = attribs.MaxCombo - score.Ok - score.Miss
	}

	pp.attribs = attribs
	pp.score = score
	pp.diff = diff
	pp.totalHits = score.Great + score.Ok + score.Meh + score.Miss

	if pp.totalHits > 0 {
		// taiko only knows full and half hits
		pp.accuracy = float64(score.Great*2+score.Ok) / float64(pp.totalHits*2)
	}

	multiplier := 1.1

	if diff.Mods.Active(difficulty.NoFail) {
		multiplier *= 0.90
	}

	if diff.Mods.Active(difficulty.Hidden) {
		multiplier *= 1.10
	}

	strainValue := pp.computeStrainValue()
	accValue := pp.computeAccuracyValue()

	totalValue := math.Pow(
		math.Pow(strainValue, 1.1)+
			math.Pow(accValue, 1.1),
		1.0/1.1,
	) * multiplier

	return api.PPv2Results{
		Aim:   strainValue,
		Acc:   accValue,
		Total: totalValue,

		EffectiveMissCount: float64(pp.score.Miss),
	}
}

func (pp *PPv2) computeStrainValue() float64 {
	strainValue := math.Pow(5.0*max(1.0, pp.attribs.Total/0.0075)-4.0, 2.0) / 100000.0

	// Longer maps are worth more
	lengthBonus := 1 + 0.1*min(1.0, float64(pp.totalHits)/1500.0)
	strainValue *= lengthBonus

	strainValue *= math.Pow(0.985, float64(pp.score.Miss))

	// Combo scaling
	if pp.attribs.MaxCombo > 0 {
		strainValue *= min(math.Pow(float64(pp.score.MaxCombo), 0.5)/math.Pow(float64(pp.attribs.MaxCombo), 0.5), 1.0)
	}

	if pp.diff.Mods.Active(difficulty.Hidden) {
		strainValue *= 1.025
	}

	if pp.diff.Mods.Active(difficulty.Flashlight) {
		strainValue *= 1.05 * lengthBonus
	}

	return strainValue * pp.accuracy
}

func (pp *PPv2) computeAccuracyValue() float64 {
	if pp.attribs.GreatHitWindow <= 0 {
		return 0
	}

	accValue := math.Pow(150.0/pp.attribs.GreatHitWindow, 1.1) * math.Pow(pp.accuracy, 15) * 22.0

	// Bonus for many objects - it's harder to keep good accuracy up for longer
	return accValue * min(1.15, math.Pow(float64(pp.totalHits)/1500.0, 0.3))
}

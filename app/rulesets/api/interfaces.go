package api

import (
	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
)

type IDifficultyCalculator interface {
	// CalculateSingle calculates the final difficulty attributes of a map
	CalculateSingle(objects []objects.IHitObject, diff *difficulty.Difficulty) Attributes

	// CalculateStep calculates successive star ratings for every prefix of a map
	CalculateStep(objects []objects.IHitObject, diff *difficulty.Difficulty) []Attributes

	// CalculateStrainPeaks returns the raw per-section strain values of every skill
	CalculateStrainPeaks(objects []objects.IHitObject, diff *difficulty.Difficulty) StrainPeaks

	GetVersion() int
	GetVersionMessage() string
}

type IPerformanceCalculator interface {
	Calculate(attribs Attributes, score ScoreStatistics, diff *difficulty.Difficulty) PPv2Results
}

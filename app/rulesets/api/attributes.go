package api

type Attributes struct {
	// Total Star rating, visible on osu!'s beatmap page
	Total float64

	// Aim stars, needed for Performance Points (aka PP) calculations
	Aim float64

	// Speed stars, needed for Performance Points (aka PP) calculations
	Speed float64

	SpeedNoteCount float64

	AimDifficultStrainCount   float64
	SpeedDifficultStrainCount float64

	// Flashlight stars, needed for Performance Points (aka PP) calculations
	Flashlight float64

	// SliderFactor is a ratio of Aim calculated without sliders to Aim with them
	SliderFactor float64

	ObjectCount int
	Circles     int
	Sliders     int
	Spinners    int
	Holds       int
	MaxCombo    int

	// GreatHitWindow is the rate-adjusted 300 window in ms, used by the
	// taiko and mania performance calculators
	GreatHitWindow float64
}

// StrainPeaks contains the per-section peaks of every skill of a ruleset,
// as well as the peaks passed through the star rating formula. Skills a
// ruleset doesn't have stay nil.
type StrainPeaks struct {
	// Aim peaks
	Aim []float64

	// Speed peaks
	Speed []float64

	// Flashlight peaks
	Flashlight []float64

	// Total contains the skill peaks passed through the star rating formula
	Total []float64
}

type PPv2Results struct {
	Aim, Speed, Acc, Flashlight, Total float64

	// Effective miss count after combo-based estimation
	EffectiveMissCount float64
}

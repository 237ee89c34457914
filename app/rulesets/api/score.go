package api

// ScoreStatistics carries the judgement counts of a play. Great/Ok/Meh/Miss
// are shared by every ruleset; Perfect and Good only exist in mania, the
// slider and tick fields only in scores set on the current client.
type ScoreStatistics struct {
	Great int
	Ok    int
	Meh   int
	Miss  int

	// mania judgements above Great and between Great and Ok
	Perfect int
	Good    int

	// catch small droplets, also large ticks of current-client slider scores
	SmallTickHit  int
	SmallTickMiss int

	LargeTickHit  int
	LargeTickMiss int

	// SliderTailHit counts slider ends hit on the current client. Negative
	// means unknown, in which case all tails are assumed hit.
	SliderTailHit int

	MaxCombo int

	// LegacyTotalScore marks a score as converted from the classic client
	// when positive.
	LegacyTotalScore int64
}

// TotalHits returns the amount of judged objects relevant for accuracy.
func (stats ScoreStatistics) TotalHits() int {
	return stats.Perfect + stats.Great + stats.Good + stats.Ok + stats.Meh + stats.Miss
}

// TotalSuccessfulHits returns judged objects that were not missed.
func (stats ScoreStatistics) TotalSuccessfulHits() int {
	return stats.Perfect + stats.Great + stats.Good + stats.Ok + stats.Meh
}

// IsLegacyScore reports whether the statistics came from the classic
// client's scoring, which never tracks slider tail judgements.
func (stats ScoreStatistics) IsLegacyScore() bool {
	return stats.LegacyTotalScore > 0
}

package objects

import (
	"math"
	"sort"
)

// TimingPoint is one row of the [TimingPoints] section. Uninherited points
// carry the base beat duration; inherited points only scale slider velocity
// within the range of the preceding uninherited point.
type TimingPoint struct {
	Time float64

	// BeatLength in ms per beat for uninherited points. For inherited points
	// the raw value is negative and interpreted as a velocity multiplier.
	BeatLength float64

	// SliderVelocity multiplier resolved from the raw beat length
	SliderVelocity float64

	Inherited bool
}

// Timings resolves the effective beat duration and slider velocity for any
// point in time via binary searches over the sorted point lists.
type Timings struct {
	SliderMult float64
	TickRate   float64

	points    []TimingPoint
	originals []TimingPoint
}

func NewTimings(sliderMult, tickRate float64) *Timings {
	return &Timings{
		SliderMult: sliderMult,
		TickRate:   tickRate,
	}
}

func (timings *Timings) AddPoint(time, beatLength float64, inherited bool) {
	point := TimingPoint{
		Time:           time,
		BeatLength:     beatLength,
		SliderVelocity: 1.0,
		Inherited:      inherited,
	}

	if inherited {
		if !math.IsNaN(beatLength) && beatLength < 0 {
			point.SliderVelocity = 100.0 / -beatLength
		}

		timings.points = append(timings.points, point)
	} else {
		if math.IsNaN(beatLength) || beatLength == 0 {
			point.BeatLength = 1000
		}

		timings.points = append(timings.points, point)
		timings.originals = append(timings.originals, point)
	}
}

// FinalizePoints has to be called once all points were added.
func (timings *Timings) FinalizePoints() {
	sort.SliceStable(timings.points, func(i, j int) bool { return timings.points[i].Time < timings.points[j].Time })
	sort.SliceStable(timings.originals, func(i, j int) bool { return timings.originals[i].Time < timings.originals[j].Time })
}

// GetPointAt returns the merged timing state at the given time: beat length
// from the most recent uninherited point at or before it, slider velocity
// from the most recent inherited point in that uninherited point's range.
func (timings *Timings) GetPointAt(time float64) TimingPoint {
	merged := TimingPoint{Time: time, BeatLength: 1000, SliderVelocity: 1.0}

	if len(timings.originals) > 0 {
		idx := sort.Search(len(timings.originals), func(i int) bool { return timings.originals[i].Time > time })
		if idx > 0 {
			idx--
		}

		base := timings.originals[idx]
		merged.BeatLength = base.BeatLength

		pIdx := sort.Search(len(timings.points), func(i int) bool { return timings.points[i].Time > time })
		for i := pIdx - 1; i >= 0; i-- {
			point := timings.points[i]
			if point.Time < base.Time {
				break
			}

			if point.Inherited {
				merged.SliderVelocity = point.SliderVelocity
				break
			}
		}
	}

	return merged
}

// GetScoringDistance returns the distance a slider travels per beat under
// the given timing state, in osu!pixels.
func (timings *Timings) GetScoringDistance(point TimingPoint) float64 {
	return 100 * timings.SliderMult * point.SliderVelocity
}

// GetVelocity returns the slider velocity in osu!pixels per millisecond.
func (timings *Timings) GetVelocity(point TimingPoint) float64 {
	return timings.GetScoringDistance(point) / point.BeatLength
}

// GetTickDistance returns the distance between slider ticks in osu!pixels.
func (timings *Timings) GetTickDistance(point TimingPoint) float64 {
	return timings.GetScoringDistance(point) / timings.TickRate
}

func (timings *Timings) PointCount() int {
	return len(timings.points)
}

func (timings *Timings) HasPoints() bool {
	return len(timings.originals) > 0
}

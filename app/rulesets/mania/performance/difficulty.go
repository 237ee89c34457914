package performance

import (
	"math"
	"sort"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/app/rulesets/api"
	"github.com/arisena/gopp/framework/math/mutils"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.018

	individualDecayBase float64 = 0.125
	overallDecayBase    float64 = 0.30
	releaseThreshold    float64 = 24.0

	sectionLength float64 = 400
	decayWeight   float64 = 0.9

	CurrentVersion int = 20220902
)

// maniaObject is a note or long note mapped to its column.
type maniaObject struct {
	startTime float64
	endTime   float64
	column    int

	deltaTime float64
}

type DifficultyCalculator struct{}

func NewDifficultyCalculator() api.IDifficultyCalculator {
	return &DifficultyCalculator{}
}

// keyCount reads the column count from the circle size, the way the mania
// format encodes it.
func keyCount(diff *difficulty.Difficulty) int {
	return mutils.Clamp(int(math.Round(diff.GetBaseCS())), 1, 18)
}

func columnOf(x float32, columns int) int {
	return mutils.Clamp(int(float64(x)*float64(columns)/512.0), 0, columns-1)
}

func createManiaObjects(hitObjects []objects.IHitObject, diff *difficulty.Difficulty, columns int) []*maniaObject {
	notes := make([]*maniaObject, 0, len(hitObjects))

	for _, o := range hitObjects {
		notes = append(notes, &maniaObject{
			startTime: o.GetStartTime() / diff.Speed,
			endTime:   o.GetEndTime() / diff.Speed,
			column:    columnOf(o.GetStartPosition().X, columns),
		})
	}

	sort.SliceStable(notes, func(i, j int) bool { return notes[i].startTime < notes[j].startTime })

	for i := 1; i < len(notes); i++ {
		notes[i].deltaTime = notes[i].startTime - notes[i-1].startTime
	}

	return notes
}

// strainProcessor carries the per-column strain state of the strain skill.
type strainProcessor struct {
	startTimes        []float64
	endTimes          []float64
	individualStrains []float64

	individualStrain float64
	overallStrain    float64

	currentStrain float64
}

func newStrainProcessor(columns int) *strainProcessor {
	return &strainProcessor{
		startTimes:        make([]float64, columns),
		endTimes:          make([]float64, columns),
		individualStrains: make([]float64, columns),
		overallStrain:     1,
	}
}

func applyDecay(value, deltaTime, decayBase float64) float64 {
	return value * math.Pow(decayBase, deltaTime/1000)
}

func (proc *strainProcessor) strainValueOf(note *maniaObject) float64 {
	startTime := note.startTime
	endTime := note.endTime
	column := note.column

	isOverlapping := false

	// +1ms tolerance mirrors the precision the hold comparisons need
	closestEndTime := math.Abs(endTime - startTime)

	holdFactor := 1.0
	holdAddition := 0.0

	for i := 0; i < len(proc.endTimes); i++ {
		// The current note is overlapped if a previous note or end is overlapping the current note body
		isOverlapping = isOverlapping || (proc.endTimes[i] > startTime+1 && endTime > proc.endTimes[i]+1)

		// We give a slight bonus to everything if something is held meanwhile
		if proc.endTimes[i] > endTime+1 {
			holdFactor = 1.25
		}

		closestEndTime = min(closestEndTime, math.Abs(endTime-proc.endTimes[i]))
	}

	// The hold addition is only valid if there is no other note with a similar ending.
	// Releasing multiple notes is just as easy as releasing one.
	if isOverlapping {
		holdAddition = 1 / (1 + math.Exp(0.5*(releaseThreshold-closestEndTime)))
	}

	// Decay and increase individualStrains in own column
	proc.individualStrains[column] = applyDecay(proc.individualStrains[column], startTime-proc.startTimes[column], individualDecayBase)
	proc.individualStrains[column] += 2.0 * holdFactor

	// For notes at the same time (in a chord), the individualStrain should be
	// the hardest individualStrain out of those columns
	if note.deltaTime <= 1 {
		proc.individualStrain = max(proc.individualStrain, proc.individualStrains[column])
	} else {
		proc.individualStrain = proc.individualStrains[column]
	}

	// Decay and increase overallStrain
	proc.overallStrain = applyDecay(proc.overallStrain, note.deltaTime, overallDecayBase)
	proc.overallStrain += (1 + holdAddition) * holdFactor

	proc.startTimes[column] = startTime
	proc.endTimes[column] = endTime

	proc.currentStrain = proc.individualStrain + proc.overallStrain

	return proc.currentStrain
}

func (proc *strainProcessor) initialStrain(time float64, note *maniaObject) float64 {
	return applyDecay(proc.individualStrain, time-note.startTime, individualDecayBase) +
		applyDecay(proc.overallStrain, time-note.startTime, overallDecayBase)
}

// strainPeaks runs the skill over the notes and returns per-section peaks.
func strainPeaks(notes []*maniaObject, columns int) []float64 {
	if len(notes) == 0 {
		return []float64{0}
	}

	proc := newStrainProcessor(columns)

	peaks := make([]float64, 0)

	intervalEnd := math.Ceil(notes[0].startTime/sectionLength) * sectionLength
	maxStrain := 0.0

	for i, note := range notes {
		for note.startTime > intervalEnd {
			peaks = append(peaks, maxStrain)

			if i > 0 {
				maxStrain = proc.initialStrain(intervalEnd, notes[i-1])
			}

			intervalEnd += sectionLength
		}

		maxStrain = max(maxStrain, proc.strainValueOf(note))
	}

	return append(peaks, maxStrain)
}

func weightedDifficulty(peaks []float64) float64 {
	sorted := make([]float64, len(peaks))
	copy(sorted, peaks)

	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	diff := 0.0
	weight := 1.0

	for _, strain := range sorted {
		diff += strain * weight
		weight *= decayWeight
	}

	return diff
}

func (diffCalc *DifficultyCalculator) attributes(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	// Hit300 is already divided by the clock rate
	attr := api.Attributes{
		GreatHitWindow: diff.Hit300,
	}

	for _, o := range hitObjects {
		attr.ObjectCount++
		attr.MaxCombo++

		if _, ok := o.(*objects.Hold); ok {
			attr.Holds++
		} else {
			attr.Circles++
		}
	}

	return attr
}

// CalculateSingle calculates the final difficulty attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	attr := diffCalc.attributes(hitObjects, diff)

	columns := keyCount(diff)
	notes := createManiaObjects(hitObjects, diff, columns)

	attr.Total = weightedDifficulty(strainPeaks(notes, columns)) * StarScalingFactor

	return attr
}

// CalculateStep calculates successive star ratings for every prefix of a map
func (diffCalc *DifficultyCalculator) CalculateStep(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) []api.Attributes {
	stars := make([]api.Attributes, 0, len(hitObjects))

	for i := range hitObjects {
		stars = append(stars, diffCalc.CalculateSingle(hitObjects[:i+1], diff))
	}

	return stars
}

func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) api.StrainPeaks {
	columns := keyCount(diff)

	peaks := api.StrainPeaks{}
	peaks.Speed = strainPeaks(createManiaObjects(hitObjects, diff, columns), columns)
	peaks.Total = make([]float64, len(peaks.Speed))

	for i, peak := range peaks.Speed {
		peaks.Total[i] = peak * StarScalingFactor
	}

	return peaks
}

func (diffCalc *DifficultyCalculator) GetVersion() int {
	return CurrentVersion
}

func (diffCalc *DifficultyCalculator) GetVersionMessage() string {
	return "2022-09-02: individual and overall strain without key mod conversions"
}

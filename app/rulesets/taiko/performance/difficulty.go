package performance

import (
	"math"
	"sort"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/app/rulesets/api"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.04125

	strainDecayBase float64 = 0.30

	sectionLength float64 = 400
	decayWeight   float64 = 0.9

	rhythmChangeBase          float64 = 1.5
	rhythmChangeBaseThreshold float64 = 0.2

	CurrentVersion int = 20140202
)

type noteType int

const (
	noteDon noteType = iota
	noteKat
	noteOther
)

type taikoObject struct {
	startTime float64
	noteType  noteType

	timeElapsed float64
	strain      float64
}

type DifficultyCalculator struct{}

func NewDifficultyCalculator() api.IDifficultyCalculator {
	return &DifficultyCalculator{}
}

func classifyNote(o objects.IHitObject) noteType {
	if _, ok := o.(*objects.Circle); !ok {
		return noteOther
	}

	// rim notes carry a whistle or clap sample
	if o.GetHitSound()&(objects.SoundWhistle|objects.SoundClap) > 0 {
		return noteKat
	}

	return noteDon
}

func createTaikoObjects(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) []*taikoObject {
	notes := make([]*taikoObject, 0, len(hitObjects))

	for _, o := range hitObjects {
		notes = append(notes, &taikoObject{
			startTime: o.GetStartTime() / diff.Speed,
			noteType:  classifyNote(o),
		})
	}

	for i := 1; i < len(notes); i++ {
		notes[i].timeElapsed = notes[i].startTime - notes[i-1].startTime
	}

	return notes
}

func hasRhythmChange(current, previous *taikoObject) bool {
	if current.timeElapsed == 0 || previous.timeElapsed == 0 {
		return false
	}

	ratio := max(current.timeElapsed/previous.timeElapsed, previous.timeElapsed/current.timeElapsed)

	if ratio >= 8 {
		return false
	}

	difference := math.Mod(math.Log(ratio)/math.Log(rhythmChangeBase), 1.0)

	return difference > rhythmChangeBaseThreshold && difference < 1-rhythmChangeBaseThreshold
}

func strainValueOf(current, previous *taikoObject) float64 {
	addition := 1.0

	if previous != nil && current.timeElapsed < 1000 && current.noteType != noteOther && previous.noteType != noteOther {
		if current.noteType != previous.noteType {
			addition += 0.75
		}

		if hasRhythmChange(current, previous) {
			addition += 1.0
		}
	}

	additionFactor := 1.0
	if current.timeElapsed < 50 {
		additionFactor = 0.4 + 0.6*current.timeElapsed/50
	}

	return addition * additionFactor
}

func calculateStrains(notes []*taikoObject) {
	for i := 1; i < len(notes); i++ {
		decay := math.Pow(strainDecayBase, notes[i].timeElapsed/1000)
		notes[i].strain = notes[i-1].strain*decay + strainValueOf(notes[i], notes[i-1])
	}
}

func strainPeaks(notes []*taikoObject) []float64 {
	if len(notes) == 0 {
		return []float64{0}
	}

	peaks := make([]float64, 0)

	intervalEnd := math.Ceil(notes[0].startTime/sectionLength) * sectionLength
	maxStrain := 0.0

	var previous *taikoObject

	for _, note := range notes {
		for note.startTime > intervalEnd {
			peaks = append(peaks, maxStrain)

			if previous != nil {
				decay := math.Pow(strainDecayBase, (intervalEnd-previous.startTime)/1000)
				maxStrain = previous.strain * decay
			}

			intervalEnd += sectionLength
		}

		maxStrain = max(maxStrain, note.strain)
		previous = note
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

		switch o.(type) {
		case *objects.Circle:
			attr.Circles++
			attr.MaxCombo++
		case *objects.Slider:
			attr.Sliders++
		case *objects.Spinner:
			attr.Spinners++
		}
	}

	return attr
}

// CalculateSingle calculates the final difficulty attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	attr := diffCalc.attributes(hitObjects, diff)

	notes := createTaikoObjects(hitObjects, diff)
	calculateStrains(notes)

	attr.Total = weightedDifficulty(strainPeaks(notes)) * StarScalingFactor

	return attr
}

// CalculateStep calculates successive star ratings for every prefix of a map
func (diffCalc *DifficultyCalculator) CalculateStep(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) []api.Attributes {
	stars := make([]api.Attributes, 0, len(hitObjects))

	notes := createTaikoObjects(hitObjects, diff)
	calculateStrains(notes)

	for i := range hitObjects {
		attr := diffCalc.attributes(hitObjects[:i+1], diff)
		attr.Total = weightedDifficulty(strainPeaks(notes[:i+1])) * StarScalingFactor

		stars = append(stars, attr)
	}

	return stars
}

func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) api.StrainPeaks {
	notes := createTaikoObjects(hitObjects, diff)
	calculateStrains(notes)

	peaks := api.StrainPeaks{}
	peaks.Speed = strainPeaks(notes)
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
	return "2014-02-02: classic strain with colour and rhythm additions"
}

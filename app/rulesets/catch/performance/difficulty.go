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
	StarScalingFactor float64 = 0.153

	normalizedHitObjectRadius        float64 = 41.0
	absolutePlayerPositioningError   float64 = 16.0
	directionChangeBonus             float64 = 21.0
	movementSkillMultiplier          float64 = 900
	movementStrainDecayBase          float64 = 0.2
	movementDecayWeight              float64 = 0.94
	movementSectionLength            float64 = 750
	baseCatcherWidth                 float64 = 106.75
	catcherWidthPlayablePortion      float64 = 0.8
	minStrainTime                    float64 = 40
	distanceBaseBonusDivisorSections float64 = 6

	CurrentVersion int = 20220902
)

// catchObject is a fruit or droplet with its position normalized against the
// catcher width, so jumps read in catcher-relative units.
type catchObject struct {
	startTime          float64
	normalizedPosition float64
	strainTime         float64
}

type DifficultyCalculator struct{}

func NewDifficultyCalculator() api.IDifficultyCalculator {
	return &DifficultyCalculator{}
}

// halfCatcherWidth returns half of the playable catcher width in osu!pixels.
// Only 80% of the plate is used, players rarely catch with the edge.
func halfCatcherWidth(diff *difficulty.Difficulty) float64 {
	catchWidth := baseCatcherWidth * diff.CircleRadiusU / 32.0

	return catchWidth * 0.5 * catcherWidthPlayablePortion
}

func createCatchObjects(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) []*catchObject {
	scalingFactor := normalizedHitObjectRadius / halfCatcherWidth(diff)

	raw := make([]*catchObject, 0, len(hitObjects))

	addObject := func(time float64, x float32) {
		raw = append(raw, &catchObject{
			startTime:          time / diff.Speed,
			normalizedPosition: float64(x) * scalingFactor,
		})
	}

	for _, o := range hitObjects {
		switch obj := o.(type) {
		case *objects.Circle:
			addObject(obj.GetStartTime(), obj.GetStartPosition().X)
		case *objects.Slider:
			addObject(obj.GetStartTime(), obj.GetStartPosition().X)

			for _, point := range obj.ScorePoints {
				addObject(point.Time, point.Pos.X)
			}
		}
	}

	for i := 1; i < len(raw); i++ {
		raw[i].strainTime = max(minStrainTime, raw[i].startTime-raw[i-1].startTime)
	}

	if len(raw) == 0 {
		return raw
	}

	return raw[1:]
}

// movementStrains runs the movement skill over the objects and returns the
// per-section strain peaks.
func movementStrains(catchObjects []*catchObject) []float64 {
	if len(catchObjects) == 0 {
		return []float64{0}
	}

	peaks := make([]float64, 0)

	lastPlayerPosition := catchObjects[0].normalizedPosition
	lastDistanceMoved := 0.0
	lastStrainTime := 0.0

	currentStrain := 0.0
	maxStrain := 0.0

	intervalEnd := math.Ceil(catchObjects[0].startTime/movementSectionLength) * movementSectionLength
	prevTime := catchObjects[0].startTime

	for _, obj := range catchObjects {
		for obj.startTime > intervalEnd {
			peaks = append(peaks, maxStrain)
			maxStrain = currentStrain * math.Pow(movementStrainDecayBase, (intervalEnd-prevTime)/1000)
			intervalEnd += movementSectionLength
		}

		playerPosition := mutils.Clamp(
			lastPlayerPosition,
			obj.normalizedPosition-(normalizedHitObjectRadius-absolutePlayerPositioningError),
			obj.normalizedPosition+(normalizedHitObjectRadius-absolutePlayerPositioningError),
		)

		distanceMoved := playerPosition - lastPlayerPosition

		weightedStrainTime := obj.strainTime + 13 + 3

		distanceAddition := math.Pow(math.Abs(distanceMoved), 1.3) / 510
		sqrtStrain := math.Sqrt(weightedStrainTime)

		if math.Abs(distanceMoved) > 0.1 {
			if math.Abs(lastDistanceMoved) > 0.1 && math.Signbit(distanceMoved) != math.Signbit(lastDistanceMoved) {
				bonusFactor := min(50, math.Abs(distanceMoved)) / 50
				antiflowFactor := max(min(70, math.Abs(lastDistanceMoved))/70, 0.38)

				distanceAddition += directionChangeBonus / math.Sqrt(lastStrainTime+16) * bonusFactor * antiflowFactor * max(1-math.Pow(weightedStrainTime/1000, 3), 0)
			}

			// Base bonus for every movement, giving some weight to streams.
			distanceAddition += 12.5 * min(math.Abs(distanceMoved), normalizedHitObjectRadius*2) / (normalizedHitObjectRadius * distanceBaseBonusDivisorSections) / sqrtStrain
		}

		lastPlayerPosition = playerPosition
		lastDistanceMoved = distanceMoved
		lastStrainTime = obj.strainTime

		currentStrain *= math.Pow(movementStrainDecayBase, obj.strainTime/1000)
		currentStrain += distanceAddition / weightedStrainTime * movementSkillMultiplier

		maxStrain = max(maxStrain, currentStrain)
		prevTime = obj.startTime
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
		weight *= movementDecayWeight
	}

	return diff
}

func (diffCalc *DifficultyCalculator) attributes(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	attr := api.Attributes{}

	for _, o := range hitObjects {
		attr.ObjectCount++

		switch obj := o.(type) {
		case *objects.Circle:
			attr.Circles++
			attr.MaxCombo++
		case *objects.Slider:
			attr.Sliders++
			attr.MaxCombo += 1 + len(obj.ScorePoints)
		case *objects.Spinner:
			attr.Spinners++
		}
	}

	return attr
}

// CalculateSingle calculates the final difficulty attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	attr := diffCalc.attributes(hitObjects, diff)

	attr.Total = math.Sqrt(weightedDifficulty(movementStrains(createCatchObjects(hitObjects, diff)))) * StarScalingFactor

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
	peaks := api.StrainPeaks{}

	peaks.Aim = movementStrains(createCatchObjects(hitObjects, diff))
	peaks.Total = make([]float64, len(peaks.Aim))

	for i, peak := range peaks.Aim {
		peaks.Total[i] = math.Sqrt(peak) * StarScalingFactor
	}

	return peaks
}

func (diffCalc *DifficultyCalculator) GetVersion() int {
	return CurrentVersion
}

func (diffCalc *DifficultyCalculator) GetVersionMessage() string {
	return "2022-09-02: movement skill without hyperdash awareness"
}

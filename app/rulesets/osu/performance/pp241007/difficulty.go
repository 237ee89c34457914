package pp241007

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/app/rulesets/api"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/preprocessing"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/skills"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.0668
	CurrentVersion    int     = 20241007
)

type DifficultyCalculator struct{}

func NewDifficultyCalculator() api.IDifficultyCalculator {
	return &DifficultyCalculator{}
}

// getStarsFromRawValues converts raw skill values to Attributes
func (diffCalc *DifficultyCalculator) getStarsFromRawValues(rawAim, rawAimNoSliders, rawSpeed, rawFlashlight float64, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	aimRating := math.Sqrt(rawAim) * StarScalingFactor
	aimRatingNoSliders := math.Sqrt(rawAimNoSliders) * StarScalingFactor
	speedRating := math.Sqrt(rawSpeed) * StarScalingFactor
	flashlightRating := math.Sqrt(rawFlashlight) * StarScalingFactor

	sliderFactor := 1.0
	if aimRating > 0.00001 {
		sliderFactor = aimRatingNoSliders / aimRating
	}

	if diff.CheckModActive(difficulty.TouchDevice) {
		aimRating = math.Pow(aimRating, 0.8)
		flashlightRating = math.Pow(flashlightRating, 0.8)
	}

	if diff.CheckModActive(difficulty.Relax) {
		aimRating *= 0.9
		speedRating = 0
		flashlightRating *= 0.7
	}

	var total float64

	baseAimPerformance := skills.DefaultDifficultyToPerformance(aimRating)
	baseSpeedPerformance := skills.DefaultDifficultyToPerformance(speedRating)

	baseFlashlightPerformance := 0.0
	if diff.CheckModActive(difficulty.Flashlight) {
		baseFlashlightPerformance = skills.FlashlightDifficultyToPerformance(flashlightRating)
	}

	basePerformance := math.Pow(
		math.Pow(baseAimPerformance, 1.1)+
			math.Pow(baseSpeedPerformance, 1.1)+
			math.Pow(baseFlashlightPerformance, 1.1),
		1.0/1.1,
	)

	if basePerformance > 0.00001 {
		total = math.Cbrt(PerformanceBaseMultiplier) * 0.027 * (math.Cbrt(100000/math.Pow(2, 1/1.1)*basePerformance) + 4)
	}

	attr.Total = total
	attr.Aim = aimRating
	attr.SliderFactor = sliderFactor
	attr.Speed = speedRating
	attr.Flashlight = flashlightRating

	return attr
}

// Retrieves skill values and converts to Attributes
func (diffCalc *DifficultyCalculator) getStars(proc *SkillsProcessor, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	attr = diffCalc.getStarsFromRawValues(
		proc.Aim.DifficultyValue(),
		proc.AimWithoutSliders.DifficultyValue(),
		proc.Speed.DifficultyValue(),
		proc.Flashlight.DifficultyValue(),
		diff,
		attr,
	)

	attr.SpeedNoteCount = proc.Speed.RelevantNoteCount()
	attr.AimDifficultStrainCount = proc.Aim.CountDifficultStrains()
	attr.SpeedDifficultStrainCount = proc.Speed.CountDifficultStrains()

	return attr
}

func (diffCalc *DifficultyCalculator) addObjectToAttribs(o objects.IHitObject, attr *api.Attributes) {
	if s, ok := o.(*objects.Slider); ok {
		attr.Sliders++
		attr.MaxCombo += len(s.ScorePoints)
	} else if _, ok := o.(*objects.Circle); ok {
		attr.Circles++
	} else if _, ok := o.(*objects.Spinner); ok {
		attr.Spinners++
	}

	attr.MaxCombo++
	attr.ObjectCount++
}

// CalculateSingle calculates the final difficulty attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(objectList []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	if len(objectList) == 0 {
		return api.Attributes{}
	}

	diffObjects := preprocessing.CreateDifficultyObjects(objectList, diff)

	proc := NewSkillsProcessor(diff)

	attr := api.Attributes{}

	diffCalc.addObjectToAttribs(objectList[0], &attr)

	for i := range diffObjects {
		diffCalc.addObjectToAttribs(objectList[i+1], &attr)
	}

	// Skills only read the shared object list, so they can run independently.
	skillList := []interface {
		Process(*preprocessing.DifficultyObject)
	}{proc.Aim, proc.AimWithoutSliders, proc.Speed, proc.Flashlight}

	var wg sync.WaitGroup

	for _, skill := range skillList {
		wg.Add(1)

		go func(skill interface {
			Process(*preprocessing.DifficultyObject)
		}) {
			defer wg.Done()

			for _, o := range diffObjects {
				skill.Process(o)
			}
		}(skill)
	}

	wg.Wait()

	return diffCalc.getStars(proc, diff, attr)
}

// CalculateStep calculates successive star ratings for every part of a beatmap
func (diffCalc *DifficultyCalculator) CalculateStep(objectList []objects.IHitObject, diff *difficulty.Difficulty) []api.Attributes {
	modString := difficulty.GetDiffMaskedMods(diff.Mods).String()
	if modString == "" {
		modString = "NM"
	}

	log.Println("Calculating step SR for mods:", modString)

	startTime := time.Now()

	if len(objectList) == 0 {
		return []api.Attributes{}
	}

	diffObjects := preprocessing.CreateDifficultyObjects(objectList, diff)

	proc := NewSkillsProcessor(diff)

	stars := make([]api.Attributes, 1, len(objectList))

	diffCalc.addObjectToAttribs(objectList[0], &stars[0])

	for i, o := range diffObjects {
		attr := stars[i]
		diffCalc.addObjectToAttribs(objectList[i+1], &attr)

		proc.Process(o)

		stars = append(stars, diffCalc.getStars(proc, diff, attr))
	}

	endTime := time.Now()

	log.Println("Calculations finished! Took ", endTime.Sub(startTime).Truncate(time.Millisecond).String())

	return stars
}

func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(objectList []objects.IHitObject, diff *difficulty.Difficulty) api.StrainPeaks {
	diffObjects := preprocessing.CreateDifficultyObjects(objectList, diff)

	proc := NewSkillsProcessor(diff)

	for _, o := range diffObjects {
		proc.Process(o)
	}

	peaks := api.StrainPeaks{
		Aim:        proc.Aim.GetCurrentStrainPeaks(),
		Speed:      proc.Speed.GetCurrentStrainPeaks(),
		Flashlight: proc.Flashlight.GetCurrentStrainPeaks(),
	}

	peaks.Total = make([]float64, len(peaks.Aim))

	for i := 0; i < len(peaks.Aim); i++ {
		stars := diffCalc.getStarsFromRawValues(peaks.Aim[i], peaks.Aim[i], peaks.Speed[i], peaks.Flashlight[i], diff, api.Attributes{})
		peaks.Total[i] = stars.Total
	}

	return peaks
}

func (diffCalc *DifficultyCalculator) GetVersion() int {
	return CurrentVersion
}

func (diffCalc *DifficultyCalculator) GetVersionMessage() string {
	return "2024-10-07: combo-scaling removal and lazer score support"
}

package skills

import (
	"math"
	"sort"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/preprocessing"
	"github.com/arisena/gopp/framework/math/mutils"
)

const (
	difficultyMultiplier float64 = 1.06
)

type Skill struct {
	// How many sections with the highest strains are reduced
	ReducedSectionCount int

	// Multiplier applied to the section with the biggest strain
	ReducedStrainBaseline float64

	// The length of each strain section
	SectionLength float64

	// Multiplier by which the weight of a strain decays per section when summing
	DecayWeight float64

	diff *difficulty.Difficulty

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks []float64

	objectStrains []float64
	difficulty    float64

	// StrainValueOf returns the strain of the skill at the given object
	StrainValueOf func(obj *preprocessing.DifficultyObject) float64

	// CalculateInitialStrain returns the strain a new section starts with
	CalculateInitialStrain func(time float64, current *preprocessing.DifficultyObject) float64
}

func NewSkill(d *difficulty.Difficulty) *Skill {
	return &Skill{
		ReducedSectionCount:   10,
		ReducedStrainBaseline: 0.75,
		SectionLength:         400,
		DecayWeight:           0.9,
		diff:                  d,
	}
}

// Process takes the next object and updates the current section peak,
// closing sections the object skipped over.
func (skill *Skill) Process(current *preprocessing.DifficultyObject) {
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/skill.SectionLength) * skill.SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
		skill.currentSectionPeak = skill.CalculateInitialStrain(skill.currentSectionEnd, current)
		skill.currentSectionEnd += skill.SectionLength
	}

	skill.currentSectionPeak = max(skill.StrainValueOf(current), skill.currentSectionPeak)
}

// GetCurrentStrainPeaks returns the peaks of every closed section plus the
// peak of the section in progress.
func (skill *Skill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	return append(peaks, skill.currentSectionPeak)
}

// DifficultyValue aggregates section peaks into the skill's difficulty. The
// top sections are dampened towards a baseline before the decaying weighted
// sum, so a single spike doesn't dominate the rating.
func (skill *Skill) DifficultyValue() float64 {
	diff := 0.0
	weight := 1.0

	strains := skill.GetCurrentStrainPeaks()
	sort.Sort(sort.Reverse(sort.Float64Slice(strains)))

	for i := 0; i < min(len(strains), skill.ReducedSectionCount); i++ {
		scale := math.Log10(mutils.Lerp(1.0, 10.0, mutils.Clamp(float64(i)/float64(skill.ReducedSectionCount), 0, 1)))
		strains[i] *= mutils.Lerp(skill.ReducedStrainBaseline, 1.0, scale)
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(strains)))

	for _, strain := range strains {
		diff += strain * weight
		weight *= skill.DecayWeight
	}

	skill.difficulty = diff * difficultyMultiplier

	return skill.difficulty
}

// CountDifficultStrains estimates the amount of strains that are comparable
// to the hardest parts of the map. Valid after DifficultyValue was called.
func (skill *Skill) CountDifficultStrains() float64 {
	if skill.difficulty == 0 {
		return 0
	}

	consistentTopStrain := skill.difficulty / 10

	sum := 0.0
	for _, strain := range skill.objectStrains {
		sum += 1.1 / (1 + math.Exp(-10*(strain/consistentTopStrain-0.88)))
	}

	return sum
}

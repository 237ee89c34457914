package skills

import (
	"math"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/evaluators"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/preprocessing"
)

const (
	flashlightSkillMultiplier float64 = 0.05512
	flashlightStrainDecayBase float64 = 0.15
)

type Flashlight struct {
	*Skill

	CurrentStrain float64
}

func NewFlashlightSkill(d *difficulty.Difficulty) *Flashlight {
	skill := &Flashlight{Skill: NewSkill(d)}

	skill.StrainValueOf = skill.flashlightStrainValue
	skill.CalculateInitialStrain = skill.flashlightInitialStrain

	return skill
}

func (skill *Flashlight) strainDecay(ms float64) float64 {
	return math.Pow(flashlightStrainDecayBase, ms/1000)
}

func (skill *Flashlight) flashlightInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.CurrentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *Flashlight) flashlightStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateFlashlight(current, skill.diff.CheckModActive(difficulty.Hidden)) * flashlightSkillMultiplier

	return skill.CurrentStrain
}

// DifficultyValue for flashlight is a plain sum of the section peaks, the
// top sections are not dampened like in the other skills.
func (skill *Flashlight) DifficultyValue() float64 {
	sum := 0.0
	for _, peak := range skill.GetCurrentStrainPeaks() {
		sum += peak
	}

	return sum
}

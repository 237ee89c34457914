package skills

import (
	"math"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/evaluators"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/preprocessing"
)

const (
	speedSkillMultiplier float64 = 1375
	speedStrainDecayBase float64 = 0.3
)

type SpeedSkill struct {
	*Skill

	CurrentStrain float64
	CurrentRhythm float64
}

func NewSpeedSkill(d *difficulty.Difficulty) *SpeedSkill {
	skill := &SpeedSkill{Skill: NewSkill(d)}

	skill.ReducedSectionCount = 5
	skill.StrainValueOf = skill.speedStrainValue
	skill.CalculateInitialStrain = skill.speedInitialStrain

	return skill
}

func (skill *SpeedSkill) strainDecay(ms float64) float64 {
	return math.Pow(speedStrainDecayBase, ms/1000)
}

func (skill *SpeedSkill) speedInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return (skill.CurrentStrain * skill.CurrentRhythm) * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *SpeedSkill) speedStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.StrainTime)
	skill.CurrentStrain += evaluators.EvaluateSpeed(current) * speedSkillMultiplier

	skill.CurrentRhythm = evaluators.EvaluateRhythm(current)

	totalStrain := skill.CurrentStrain * skill.CurrentRhythm

	skill.objectStrains = append(skill.objectStrains, totalStrain)

	return totalStrain
}

// RelevantNoteCount estimates how many notes actually take part in the speed
// difficulty, weighted against the hardest strain.
func (skill *SpeedSkill) RelevantNoteCount() float64 {
	if len(skill.objectStrains) == 0 {
		return 0
	}

	maxStrain := 0.0
	for _, strain := range skill.objectStrains {
		maxStrain = max(maxStrain, strain)
	}

	if maxStrain == 0 {
		return 0
	}

	sum := 0.0
	for _, strain := range skill.objectStrains {
		sum += 1.0 / (1.0 + math.Exp(-(strain/maxStrain*12.0 - 6.0)))
	}

	return sum
}

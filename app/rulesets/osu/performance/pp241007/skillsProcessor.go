package pp241007

import (
	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/preprocessing"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/skills"
)

type SkillsProcessor struct {
	Aim               *skills.AimSkill
	AimWithoutSliders *skills.AimSkill
	Speed             *skills.SpeedSkill
	Flashlight        *skills.Flashlight
}

func NewSkillsProcessor(d *difficulty.Difficulty) *SkillsProcessor {
	return &SkillsProcessor{
		Aim:               skills.NewAimSkill(d, true),
		AimWithoutSliders: skills.NewAimSkill(d, false),
		Speed:             skills.NewSpeedSkill(d),
		Flashlight:        skills.NewFlashlightSkill(d),
	}
}

func (proc *SkillsProcessor) Process(current *preprocessing.DifficultyObject) {
	proc.Aim.Process(current)
	proc.AimWithoutSliders.Process(current)
	proc.Speed.Process(current)
	proc.Flashlight.Process(current)
}

package evaluators

import (
	"math"

	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/preprocessing"
	"github.com/arisena/gopp/framework/math/mutils"
)

const (
	aimWideAngleMultiplier      float64 = 1.5
	aimAcuteAngleMultiplier     float64 = 1.95
	aimSliderMultiplier         float64 = 1.35
	aimVelocityChangeMultiplier float64 = 0.75
)

// EvaluateAim rewards the jump to the current object, scaled by angle
// sharpness, velocity changes and slider travel.
func EvaluateAim(current *preprocessing.DifficultyObject, withSliders bool) float64 {
	if current.IsSpinner || current.Index <= 1 || current.Previous(0).IsSpinner {
		return 0
	}

	osuCurrObj := current
	osuLastObj := current.Previous(0)
	osuLastLastObj := current.Previous(1)

	// Start with the jump velocity, assuming the last object is a circle.
	currVelocity := osuCurrObj.LazyJumpDistance / osuCurrObj.StrainTime

	// If the last object is a slider, extend its travel velocity through into the current object.
	if osuLastObj.IsSlider && withSliders {
		travelVelocity := osuLastObj.TravelDistance / osuLastObj.TravelTime
		movementVelocity := osuCurrObj.MinimumJumpDistance / osuCurrObj.MinimumJumpTime

		currVelocity = max(currVelocity, movementVelocity+travelVelocity)
	}

	prevVelocity := osuLastObj.LazyJumpDistance / osuLastObj.StrainTime

	if osuLastLastObj.IsSlider && withSliders {
		travelVelocity := osuLastLastObj.TravelDistance / osuLastLastObj.TravelTime
		movementVelocity := osuLastObj.MinimumJumpDistance / osuLastObj.MinimumJumpTime

		prevVelocity = max(prevVelocity, movementVelocity+travelVelocity)
	}

	wideAngleBonus := 0.0
	acuteAngleBonus := 0.0
	sliderBonus := 0.0
	velocityChangeBonus := 0.0

	aimStrain := currVelocity

	// Angle bonuses only apply when the rhythm is steady.
	if max(osuCurrObj.StrainTime, osuLastObj.StrainTime) < 1.25*min(osuCurrObj.StrainTime, osuLastObj.StrainTime) {
		if !math.IsNaN(osuCurrObj.Angle) && !math.IsNaN(osuLastObj.Angle) && !math.IsNaN(osuLastLastObj.Angle) {
			currAngle := osuCurrObj.Angle
			lastAngle := osuLastObj.Angle
			lastLastAngle := osuLastLastObj.Angle

			// Rewarding angles, take the smaller velocity as base.
			angleBonus := min(currVelocity, prevVelocity)

			wideAngleBonus = calcWideAngleBonus(currAngle)
			acuteAngleBonus = calcAcuteAngleBonus(currAngle)

			// Only buff acute angles on high BPM, deltatime < 100ms (>150 BPM 1/4).
			if osuCurrObj.StrainTime > 100 {
				acuteAngleBonus = 0
			} else {
				acuteAngleBonus *= calcAcuteAngleBonus(lastAngle) *
					min(angleBonus, 125/osuCurrObj.StrainTime) *
					math.Pow(math.Sin(math.Pi/2*min(1, (100-osuCurrObj.StrainTime)/25)), 2) *
					math.Pow(math.Sin(math.Pi/2*(mutils.Clamp(osuCurrObj.LazyJumpDistance, 50, 100)-50)/50), 2)
			}

			// Penalize angle repetition.
			wideAngleBonus *= angleBonus * (1 - min(wideAngleBonus, math.Pow(calcWideAngleBonus(lastAngle), 3)))
			acuteAngleBonus *= 0.5 + 0.5*(1-min(acuteAngleBonus, math.Pow(calcAcuteAngleBonus(lastLastAngle), 3)))
		}
	}

	if max(prevVelocity, currVelocity) != 0 {
		// Use the average velocity over the whole object when awarding differences, not the
		// individual jump and slider path velocities.
		prevVelocity = (osuLastObj.LazyJumpDistance + osuLastLastObj.TravelDistance) / osuLastObj.StrainTime
		currVelocity = (osuCurrObj.LazyJumpDistance + osuLastObj.TravelDistance) / osuCurrObj.StrainTime

		// Scale with ratio of difference compared to half the max dist.
		distRatio := math.Pow(math.Sin(math.Pi/2*math.Abs(prevVelocity-currVelocity)/max(prevVelocity, currVelocity)), 2)

		// Reward for % distance up to 125 / strainTime for overlaps where velocity is still changing.
		overlapVelocityBuff := min(125/min(osuCurrObj.StrainTime, osuLastObj.StrainTime), math.Abs(prevVelocity-currVelocity))

		velocityChangeBonus = overlapVelocityBuff * distRatio

		// Penalize for rhythm changes.
		velocityChangeBonus *= math.Pow(min(osuCurrObj.StrainTime, osuLastObj.StrainTime)/max(osuCurrObj.StrainTime, osuLastObj.StrainTime), 2)
	}

	if osuLastObj.IsSlider {
		// Reward sliders based on velocity.
		sliderBonus = osuLastObj.TravelDistance / osuLastObj.TravelTime
	}

	// Add in acute angle bonus or wide angle bonus + velocity change bonus, whichever is larger.
	aimStrain += max(acuteAngleBonus*aimAcuteAngleMultiplier, wideAngleBonus*aimWideAngleMultiplier+velocityChangeBonus*aimVelocityChangeMultiplier)

	if withSliders {
		aimStrain += sliderBonus * aimSliderMultiplier
	}

	return aimStrain
}

func calcWideAngleBonus(angle float64) float64 {
	return math.Pow(math.Sin(3.0/4*(min(5.0/6*math.Pi, max(math.Pi/6, angle))-math.Pi/6)), 2)
}

func calcAcuteAngleBonus(angle float64) float64 {
	return 1 - calcWideAngleBonus(angle)
}

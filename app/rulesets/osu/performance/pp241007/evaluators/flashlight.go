package evaluators

import (
	"math"

	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/preprocessing"
)

const (
	flMaxOpacityBonus    float64 = 0.4
	flHiddenBonus        float64 = 0.2
	flMinVelocity        float64 = 0.5
	flSliderMultiplier   float64 = 1.3
	flMinAngleMultiplier float64 = 0.2
)

// EvaluateFlashlight rewards the distance covered to the last ten objects,
// weighted by how visible they are under the flashlight area.
func EvaluateFlashlight(current *preprocessing.DifficultyObject, hidden bool) float64 {
	if current.IsSpinner {
		return 0
	}

	osuCurrObj := current

	scalingFactor := 52.0 / osuCurrObj.Diff.CircleRadiusU
	smallDistNerf := 1.0
	cumulativeStrainTime := 0.0

	result := 0.0

	lastObj := osuCurrObj

	angleRepeatCount := 0.0

	for i := 0; i < min(osuCurrObj.Index, 10); i++ {
		currentObj := osuCurrObj.Previous(i)

		if !currentObj.IsSpinner {
			jumpDistance := float64(osuCurrObj.BaseObject.GetStackedStartPositionMod(osuCurrObj.Diff.Mods).Dst(currentObj.BaseObject.GetStackedEndPositionMod(osuCurrObj.Diff.Mods)))

			cumulativeStrainTime += lastObj.StrainTime

			// We want to nerf objects that can be easily seen within the Flashlight circle radius.
			if i == 0 {
				smallDistNerf = min(1.0, jumpDistance/75.0)
			}

			// We also want to nerf stacks so that only the first object of the stack is accounted for.
			stackNerf := min(1.0, (currentObj.LazyJumpDistance/scalingFactor)/25.0)

			// Bonus based on how visible the object is.
			opacityBonus := 1.0 + flMaxOpacityBonus*(1.0-osuCurrObj.OpacityAt(currentObj.BaseObject.GetStartTime()))

			result += stackNerf * opacityBonus * scalingFactor * jumpDistance / cumulativeStrainTime

			if !math.IsNaN(currentObj.Angle) && !math.IsNaN(osuCurrObj.Angle) {
				// Objects further back in time should count less for the nerf.
				if math.Abs(currentObj.Angle-osuCurrObj.Angle) < 0.02 {
					angleRepeatCount += max(1.0-0.1*float64(i), 0.0)
				}
			}
		}

		lastObj = currentObj
	}

	result = math.Pow(smallDistNerf*result, 2.0)

	// Additional bonus for Hidden due to there being no approach circles.
	if hidden {
		result *= 1.0 + flHiddenBonus
	}

	// Nerf patterns with repeated angles.
	result *= flMinAngleMultiplier + (1-flMinAngleMultiplier)/(angleRepeatCount+1)

	sliderBonus := 0.0

	if slider, ok := osuCurrObj.BaseObject.(*preprocessing.LazySlider); ok {
		// Invert the scaling factor to determine the true travel distance independent of circle size.
		pixelTravelDistance := float64(slider.LazyTravelDistance) / scalingFactor

		// Reward sliders based on velocity.
		sliderBonus = math.Pow(max(0, pixelTravelDistance/osuCurrObj.TravelTime-flMinVelocity), 0.5)

		// Longer sliders require more memorisation.
		sliderBonus *= pixelTravelDistance

		// Nerf sliders with repeats, as less memorisation is required.
		if slider.RepeatCount > 1 {
			sliderBonus /= float64(slider.RepeatCount)
		}
	}

	result += sliderBonus * flSliderMultiplier

	return result
}

package evaluators

import (
	"math"

	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007/preprocessing"
	"github.com/arisena/gopp/framework/math/mutils"
)

const (
	speedSingleSpacingThreshold float64 = 125.0
	speedMinSpeedBonus          float64 = 75.0 // ~200BPM
	speedBalancingFactor        float64 = 40.0
)

// EvaluateSpeed rewards tapping density, with a distance component capped at
// streaming spacing so spaced streams don't double dip with aim.
func EvaluateSpeed(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	osuCurrObj := current
	osuPrevObj := current.Previous(0)
	osuNextObj := current.Next(0)

	strainTime := osuCurrObj.StrainTime
	doubletapness := 1.0 - osuCurrObj.GetDoubletapness(osuNextObj)

	// Cap deltatime to the OD 300 hitwindow.
	// 0.93 is derived from making sure 260bpm OD8 streams aren't nerfed harshly, whilst 0.92 limits the effect of the cap.
	strainTime /= mutils.Clamp(strainTime/osuCurrObj.GreatWindow/0.93, 0.92, 1)

	speedBonus := 1.0
	if strainTime < speedMinSpeedBonus {
		speedBonus = 1 + 0.75*math.Pow((speedMinSpeedBonus-strainTime)/speedBalancingFactor, 2)
	}

	travelDistance := 0.0
	if osuPrevObj != nil {
		travelDistance = osuPrevObj.TravelDistance
	}

	distance := min(speedSingleSpacingThreshold, travelDistance+osuCurrObj.MinimumJumpDistance)

	return (speedBonus + speedBonus*math.Pow(distance/speedSingleSpacingThreshold, 3.5)) * doubletapness / strainTime
}

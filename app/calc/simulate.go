package calc

import (
	"math"

	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/app/rulesets/api"
	"github.com/arisena/gopp/framework/math/mutils"
)

// Hit statistics simulation from a target accuracy, used when a request
// doesn't carry explicit judgement counts. The per-mode math reconstructs
// the judgement spread a score of that accuracy would most plausibly have.

func simulateOsu(accuracy float64, total, misses int) api.ScoreStatistics {
	relevant := total - misses
	if relevant <= 0 {
		return api.ScoreStatistics{Miss: misses, SliderTailHit: -1}
	}

	relAccuracy := mutils.Clamp(accuracy*float64(total)/float64(relevant), 0, 1)

	var n100, n50 int

	switch {
	case relAccuracy >= 0.25:
		// between 25% and 100% the 100:50 ratio follows a quadratic falloff
		ratio := math.Pow(1-(relAccuracy-0.25)/0.75, 2)
		c100 := 6 * float64(relevant) * (1 - relAccuracy) / (5*ratio + 4)
		c50 := c100 * ratio

		n100 = int(math.Round(c100))
		n50 = int(math.Round(c100+c50)) - n100
	case relAccuracy >= 1.0/6:
		// everything is a 100 or a 50, no 300s left
		c100 := 6*float64(relevant)*relAccuracy - float64(relevant)
		c50 := float64(relevant) - c100

		n100 = int(math.Round(c100))
		n50 = int(math.Round(c100+c50)) - n100
	default:
		// below 1/6 even all-50s can't reach the accuracy, the rest are misses
		n50 = int(math.Round(6 * float64(relevant) * relAccuracy))
		misses = total - n50
	}

	n300 := total - n100 - n50 - misses

	return api.ScoreStatistics{
		Great:         max(0, n300),
		Ok:            max(0, n100),
		Meh:           max(0, n50),
		Miss:          max(0, misses),
		SliderTailHit: -1,
	}
}

func simulateTaiko(accuracy float64, total, misses int) api.ScoreStatistics {
	relevant := total - misses

	nGreat := int(math.Round((2*accuracy - 1) * float64(relevant)))
	nGood := relevant - nGreat

	return api.ScoreStatistics{
		Great:         max(0, nGreat),
		Ok:            max(0, nGood),
		Miss:          max(0, misses),
		SliderTailHit: -1,
	}
}

func simulateMania(accuracy float64, total, misses int) api.ScoreStatistics {
	relevant := total - misses

	var nPerfect, nGreat, nGood, nOk, nMeh int

	if relevant > 0 {
		switch {
		case accuracy >= 0.96:
			p := 1 - (1-accuracy)/0.04
			nPerfect = int(math.Round(p * float64(relevant)))
			nGreat = relevant - nPerfect
		case accuracy >= 0.90:
			p := 1 - (0.96-accuracy)/0.06
			nGreat = int(math.Round(p * float64(relevant)))
			nGood = relevant - nGreat
		case accuracy >= 0.80:
			p := 1 - (0.90-accuracy)/0.10
			nGood = int(math.Round(p * float64(relevant)))
			nOk = relevant - nGood
		case accuracy >= 0.60:
			p := 1 - (0.80-accuracy)/0.20
			nOk = int(math.Round(p * float64(relevant)))
			nMeh = relevant - nOk
		default:
			nMeh = relevant
		}
	}

	return api.ScoreStatistics{
		Perfect:       max(0, nPerfect),
		Great:         max(0, nGreat),
		Good:          max(0, nGood),
		Ok:            max(0, nOk),
		Meh:           max(0, nMeh),
		Miss:          max(0, misses),
		SliderTailHit: -1,
	}
}

// catchMaxCounts splits a map's scorable points into fruits (circles, slider
// heads, reverses and tails) and droplets (slider ticks).
func catchMaxCounts(hitObjects []objects.IHitObject) (fruits, droplets int) {
	for _, o := range hitObjects {
		switch obj := o.(type) {
		case *objects.Circle:
			fruits++
		case *objects.Slider:
			fruits++

			for i, point := range obj.ScorePoints {
				if point.IsReverse || i == len(obj.ScorePoints)-1 {
					fruits++
				} else {
					droplets++
				}
			}
		}
	}

	return
}

// simulateCatch assumes misses happened on droplets and every tiny droplet
// was caught, the least punishing reading of a bare miss count.
func simulateCatch(hitObjects []objects.IHitObject, misses int) api.ScoreStatistics {
	fruits, droplets := catchMaxCounts(hitObjects)

	return api.ScoreStatistics{
		Great:         fruits,
		LargeTickHit:  max(0, droplets-misses),
		Miss:          misses,
		SliderTailHit: -1,
	}
}

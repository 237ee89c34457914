package preprocessing

import (
	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/framework/math/vector"
)

const (
	NormalizedRadius        = 50.0
	CircleSizeBuffThreshold = 30.0
	MinDeltaTime            = 25

	maximumSliderRadius float32 = NormalizedRadius * 2.4
	assumedSliderRadius float32 = NormalizedRadius * 1.8
)

// LazySlider decorates a slider with the sloppy path a player is assumed to
// take through it: the cursor only moves once a nested object leaves the
// follow radius.
type LazySlider struct {
	*objects.Slider

	diff *difficulty.Difficulty

	LazyEndPosition vector.Vector2f

	LazyTravelDistance float32

	LazyTravelTime float64
}

func NewLazySlider(slider *objects.Slider, d *difficulty.Difficulty) *LazySlider {
	decorated := &LazySlider{
		Slider: slider,
		diff:   d,
	}

	decorated.calculateLazyTravel()

	return decorated
}

func (slider *LazySlider) calculateLazyTravel() {
	slider.LazyTravelTime = slider.EndTimeLazer - slider.GetStartTime()

	slider.LazyEndPosition = slider.GetStackedPositionAtMod(slider.GetStartTime()+slider.LazyTravelTime, slider.diff.Mods)

	currCursorPosition := slider.GetStackedStartPositionMod(slider.diff.Mods)
	scalingFactor := NormalizedRadius / slider.diff.CircleRadiusU

	for i, point := range slider.ScorePointsLazer {
		currMovement := slider.stackedTickPos(point).Sub(currCursorPosition)
		currMovementLength := scalingFactor * float64(currMovement.Len())

		// the cursor only has to break the assumed follow circle, except on
		// reverse arrows where following tightly matters
		requiredMovement := float64(assumedSliderRadius)

		if i == len(slider.ScorePointsLazer)-1 {
			// the tail can be lazily reached from the last real movement
			lazyMovement := slider.LazyEndPosition.Sub(currCursorPosition)

			if lazyMovement.Len() < currMovement.Len() {
				currMovement = lazyMovement
			}

			currMovementLength = scalingFactor * float64(currMovement.Len())
		} else if point.IsReverse {
			requiredMovement = NormalizedRadius
		}

		if currMovementLength > requiredMovement {
			currCursorPosition = currCursorPosition.Add(currMovement.Scl(float32((currMovementLength - requiredMovement) / currMovementLength)))
			currMovementLength *= (currMovementLength - requiredMovement) / currMovementLength
			slider.LazyTravelDistance += float32(currMovementLength)
		}

		if i == len(slider.ScorePointsLazer)-1 {
			slider.LazyEndPosition = currCursorPosition
		}
	}
}

func (slider *LazySlider) stackedTickPos(point objects.TickPoint) vector.Vector2f {
	return objects.ModifyPosition(point.Pos, slider.diff.Mods).Add(slider.GetStackOffset())
}

package objects

import (
	"math"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/framework/math/curves"
	"github.com/arisena/gopp/framework/math/mutils"
	"github.com/arisena/gopp/framework/math/vector"
)

// legacyLastTickOffset shifts the scored slider tail backwards, matching
// the historical scoring leniency.
const legacyLastTickOffset = 36.0

// maxSliderTicks bounds degenerate maps with near-zero tick spacing.
const maxSliderTicks = 10000

// TickPoint is one scorable judgement point along a slider: a tick, a
// reverse arrow or the tail.
type TickPoint struct {
	Time      float64
	Pos       vector.Vector2f
	IsReverse bool
}

type Slider struct {
	HitObject

	multiCurve *curves.MultiCurve

	pixelLength float64

	// RepeatCount counts spans including the first one
	RepeatCount int

	spanDuration float64

	// ScorePoints holds ticks, reverses and the legacy tail; the lazer list
	// differs only in the tail, which sits at EndTimeLazer.
	ScorePoints      []TickPoint
	ScorePointsLazer []TickPoint

	EndTimeLazer float64
}

func NewSlider(pos vector.Vector2f, startTime float64, typ curves.CurveType, controlPoints []vector.Vector2f, repeatCount int, pixelLength float64, hitSound int, newCombo bool) *Slider {
	slider := &Slider{
		HitObject: HitObject{
			StartPosRaw: pos,
			EndPosRaw:   pos,
			StartTime:   startTime,
			EndTime:     startTime,
			HitSound:    hitSound,
			NewCombo:    newCombo,
		},
		multiCurve:  curves.NewMultiCurveT(typ, controlPoints, pixelLength),
		pixelLength: pixelLength,
		RepeatCount: max(1, repeatCount),
	}

	slider.EndTimeLazer = startTime

	return slider
}

// SetTiming resolves the slider's duration and score points against the
// effective timing point at its start time. Has to be called before the
// slider is fed to any difficulty calculation.
func (slider *Slider) SetTiming(timings *Timings) {
	point := timings.GetPointAt(slider.StartTime)

	velocity := timings.GetVelocity(point)
	if velocity <= 0 || math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		velocity = 1
	}

	slider.spanDuration = slider.pixelLength / velocity
	slider.EndTime = slider.StartTime + slider.spanDuration*float64(slider.RepeatCount)
	slider.EndTimeLazer = max(slider.StartTime+slider.GetDuration()/2, slider.EndTime-legacyLastTickOffset)

	if slider.RepeatCount%2 == 1 {
		slider.EndPosRaw = slider.multiCurve.GetEndPoint()
	} else {
		slider.EndPosRaw = slider.multiCurve.GetStartPoint()
	}

	slider.ScorePoints = slider.ScorePoints[:0]

	tickDistance := timings.GetTickDistance(point)
	minDistanceFromEnd := velocity * 10

	for span := 0; span < slider.RepeatCount; span++ {
		spanStart := slider.StartTime + float64(span)*slider.spanDuration
		reversed := span%2 == 1

		if tickDistance > 0.01 && slider.pixelLength > 0 {
			for d := tickDistance; d < slider.pixelLength-minDistanceFromEnd; d += tickDistance {
				if len(slider.ScorePoints) >= maxSliderTicks {
					break
				}

				progress := d / slider.pixelLength

				pathProgress := progress
				if reversed {
					pathProgress = 1 - progress
				}

				slider.ScorePoints = append(slider.ScorePoints, TickPoint{
					Time: spanStart + progress*slider.spanDuration,
					Pos:  slider.multiCurve.PointAt(float32(pathProgress)),
				})
			}
		}

		if span < slider.RepeatCount-1 {
			pos := slider.multiCurve.GetEndPoint()
			if reversed {
				pos = slider.multiCurve.GetStartPoint()
			}

			slider.ScorePoints = append(slider.ScorePoints, TickPoint{
				Time:      spanStart + slider.spanDuration,
				Pos:       pos,
				IsReverse: true,
			})
		}
	}

	slider.ScorePointsLazer = make([]TickPoint, len(slider.ScorePoints), len(slider.ScorePoints)+1)
	copy(slider.ScorePointsLazer, slider.ScorePoints)

	slider.ScorePoints = append(slider.ScorePoints, TickPoint{
		Time: slider.EndTime,
		Pos:  slider.EndPosRaw,
	})

	slider.ScorePointsLazer = append(slider.ScorePointsLazer, TickPoint{
		Time: slider.EndTimeLazer,
		Pos:  slider.PositionAt(slider.EndTimeLazer),
	})
}

// PositionAt returns the raw path position at the given absolute time.
func (slider *Slider) PositionAt(time float64) vector.Vector2f {
	if slider.spanDuration <= 0 {
		return slider.StartPosRaw
	}

	t := mutils.Clamp((time-slider.StartTime)/slider.spanDuration, 0, float64(slider.RepeatCount))

	span := int(t)
	progress := t - float64(span)

	if span >= slider.RepeatCount {
		span = slider.RepeatCount - 1
		progress = 1
	}

	if span%2 == 1 {
		progress = 1 - progress
	}

	return slider.multiCurve.PointAt(float32(progress))
}

func (slider *Slider) GetStackedPositionAtMod(time float64, mods difficulty.Modifier) vector.Vector2f {
	return ModifyPosition(slider.PositionAt(time), mods).Add(slider.StackOffset)
}

func (slider *Slider) GetLength() float32 {
	return slider.multiCurve.GetLength()
}

func (slider *Slider) GetPixelLength() float64 {
	return slider.pixelLength
}

func (slider *Slider) GetSpanDuration() float64 {
	return slider.spanDuration
}

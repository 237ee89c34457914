package objects

import (
	"github.com/arisena/gopp/framework/math/vector"
)

type Circle struct {
	HitObject
}

func NewCircle(pos vector.Vector2f, startTime float64, hitSound int, newCombo bool) *Circle {
	circle := &Circle{
		HitObject: HitObject{
			StartPosRaw: pos,
			EndPosRaw:   pos,
			StartTime:   startTime,
			EndTime:     startTime,
			HitSound:    hitSound,
			NewCombo:    newCombo,
		},
	}

	return circle
}

package objects

import (
	"github.com/arisena/gopp/framework/math/vector"
)

// Hold is the mania long note. The column is derived from the X coordinate
// by the mania ruleset, the object itself only keeps the raw position.
type Hold struct {
	HitObject
}

func NewHold(pos vector.Vector2f, startTime, endTime float64, hitSound int) *Hold {
	hold := &Hold{
		HitObject: HitObject{
			StartPosRaw: pos,
			EndPosRaw:   pos,
			StartTime:   startTime,
			EndTime:     max(startTime, endTime),
			HitSound:    hitSound,
		},
	}

	return hold
}

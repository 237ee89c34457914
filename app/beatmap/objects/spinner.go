package objects

import (
	"github.com/arisena/gopp/framework/math/vector"
)

type Spinner struct {
	HitObject
}

func NewSpinner(startTime, endTime float64, hitSound int, newCombo bool) *Spinner {
	// spinners always sit at the playfield centre
	pos := vector.NewVec2f(PlayfieldWidth/2, PlayfieldHeight/2)

	spinner := &Spinner{
		HitObject: HitObject{
			StartPosRaw: pos,
			EndPosRaw:   pos,
			StartTime:   startTime,
			EndTime:     max(startTime, endTime),
			HitSound:    hitSound,
			NewCombo:    newCombo,
		},
	}

	return spinner
}

package objects

import (
	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/framework/math/vector"
)

const (
	PlayfieldWidth  = 512.0
	PlayfieldHeight = 384.0
)

// Hit sound bit flags, kept from the parsed object line. The taiko ruleset
// derives note colour and size from these.
const (
	SoundNormal  = 1 << iota >> 1 // 0, implicit
	SoundWhistle                  // 2
	SoundFinish                   // 4
	SoundClap                     // 8
)

type IHitObject interface {
	GetStartTime() float64
	GetEndTime() float64
	GetDuration() float64

	GetStartPosition() vector.Vector2f
	GetEndPosition() vector.Vector2f

	GetStackedStartPosition() vector.Vector2f
	GetStackedStartPositionMod(mods difficulty.Modifier) vector.Vector2f
	GetStackedEndPositionMod(mods difficulty.Modifier) vector.Vector2f

	GetStackOffset() vector.Vector2f
	SetStackOffset(offset vector.Vector2f)

	IsNewCombo() bool
	GetHitSound() int
}

// HitObject is the shared part of every object variant. Positions and times
// are fixed by the parser; only the stack offset is assigned later, by the
// stacking pass that owns the object list.
type HitObject struct {
	StartPosRaw vector.Vector2f
	EndPosRaw   vector.Vector2f

	StartTime float64
	EndTime   float64

	StackOffset vector.Vector2f

	HitSound int
	NewCombo bool
}

func (hitObject *HitObject) GetStartTime() float64 {
	return hitObject.StartTime
}

func (hitObject *HitObject) GetEndTime() float64 {
	return hitObject.EndTime
}

func (hitObject *HitObject) GetDuration() float64 {
	return hitObject.EndTime - hitObject.StartTime
}

func (hitObject *HitObject) GetStartPosition() vector.Vector2f {
	return hitObject.StartPosRaw
}

func (hitObject *HitObject) GetEndPosition() vector.Vector2f {
	return hitObject.EndPosRaw
}

func (hitObject *HitObject) GetStackedStartPosition() vector.Vector2f {
	return hitObject.StartPosRaw.Add(hitObject.StackOffset)
}

func (hitObject *HitObject) GetStackedStartPositionMod(mods difficulty.Modifier) vector.Vector2f {
	return ModifyPosition(hitObject.StartPosRaw, mods).Add(hitObject.StackOffset)
}

func (hitObject *HitObject) GetStackedEndPositionMod(mods difficulty.Modifier) vector.Vector2f {
	return ModifyPosition(hitObject.EndPosRaw, mods).Add(hitObject.StackOffset)
}

func (hitObject *HitObject) GetStackOffset() vector.Vector2f {
	return hitObject.StackOffset
}

func (hitObject *HitObject) SetStackOffset(offset vector.Vector2f) {
	hitObject.StackOffset = offset
}

func (hitObject *HitObject) IsNewCombo() bool {
	return hitObject.NewCombo
}

func (hitObject *HitObject) GetHitSound() int {
	return hitObject.HitSound
}

// ModifyPosition applies geometry-changing modifiers. HardRock mirrors the
// playfield vertically.
func ModifyPosition(pos vector.Vector2f, mods difficulty.Modifier) vector.Vector2f {
	if mods.Active(difficulty.HardRock) {
		return vector.NewVec2f(pos.X, PlayfieldHeight-pos.Y)
	}

	return pos
}

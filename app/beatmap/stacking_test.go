package beatmap

import (
	"math"
	"testing"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/framework/math/vector"
)

func stackTestMap(hitObjects []objects.IHitObject) *BeatMap {
	return &BeatMap{
		FormatVersion: 14,
		StackLeniency: 0.7,
		HitObjects:    hitObjects,
	}
}

func TestStackingOffsetsCircleTower(t *testing.T) {
	pos := vector.NewVec2f(100, 100)
	hitObjects := []objects.IHitObject{
		objects.NewCircle(pos, 0, 0, true),
		objects.NewCircle(pos, 100, 0, false),
		objects.NewCircle(pos, 200, 0, false),
	}

	diff := difficulty.NewDifficulty(5, 4, 5, 5)

	ApplyStacking(stackTestMap(hitObjects), diff)

	// the last note stays put, earlier notes lean up and left
	if off := hitObjects[2].GetStackOffset(); off.X != 0 || off.Y != 0 {
		t.Errorf("last note moved: %v", off)
	}

	step := float32(diff.CircleRadiusU) / 10

	for i, wantSteps := range []float32{2, 1} {
		off := hitObjects[i].GetStackOffset()
		want := -wantSteps * step

		if math.Abs(float64(off.X-want)) > 1e-4 || math.Abs(float64(off.Y-want)) > 1e-4 {
			t.Errorf("note %d offset = %v, want (%v, %v)", i, off, want, want)
		}
	}
}

func TestStackingRespectsTimeThreshold(t *testing.T) {
	pos := vector.NewVec2f(100, 100)
	hitObjects := []objects.IHitObject{
		objects.NewCircle(pos, 0, 0, true),
		objects.NewCircle(pos, 10000, 0, false),
	}

	ApplyStacking(stackTestMap(hitObjects), difficulty.NewDifficulty(5, 4, 5, 5))

	for i, o := range hitObjects {
		if off := o.GetStackOffset(); off.X != 0 || off.Y != 0 {
			t.Errorf("note %d moved despite the gap: %v", i, off)
		}
	}
}

func TestStackingIgnoresOtherModes(t *testing.T) {
	pos := vector.NewVec2f(100, 100)
	hitObjects := []objects.IHitObject{
		objects.NewCircle(pos, 0, 0, true),
		objects.NewCircle(pos, 100, 0, false),
	}

	beatMap := stackTestMap(hitObjects)
	beatMap.Mode = 3

	ApplyStacking(beatMap, difficulty.NewDifficulty(5, 4, 5, 5))

	for i, o := range hitObjects {
		if off := o.GetStackOffset(); off.X != 0 || off.Y != 0 {
			t.Errorf("note %d moved in mania: %v", i, off)
		}
	}
}

func TestStackingOldAlgorithm(t *testing.T) {
	pos := vector.NewVec2f(100, 100)
	hitObjects := []objects.IHitObject{
		objects.NewCircle(pos, 0, 0, true),
		objects.NewCircle(pos, 100, 0, false),
	}

	beatMap := stackTestMap(hitObjects)
	beatMap.FormatVersion = 3

	ApplyStacking(beatMap, difficulty.NewDifficulty(5, 4, 5, 5))

	// the pre-v6 pass stacks the first note onto the later one
	if off := hitObjects[0].GetStackOffset(); off.X == 0 && off.Y == 0 {
		t.Errorf("first note did not move")
	}
	if off := hitObjects[1].GetStackOffset(); off.X != 0 || off.Y != 0 {
		t.Errorf("second note moved: %v", off)
	}
}

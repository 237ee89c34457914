package beatmap

import (
	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
)

// BeatMap is the parsed, immutable form of one .osu file. Calculations
// never mutate it; the modifier transformation clones the difficulty
// settings and the stacking pass works on a per-calculation object list.
type BeatMap struct {
	FormatVersion int

	// Mode as declared in [General]: 0 osu, 1 taiko, 2 catch, 3 mania
	Mode int

	Artist  string
	Name    string
	Creator string
	Version string

	StackLeniency float64

	Diff *difficulty.Difficulty

	Timings *objects.Timings

	HitObjects []objects.IHitObject

	// Breaks are [start, end] pairs in ms, used only for drain time
	Breaks [][2]float64
}

// DrainLength returns the playable duration in ms, with break periods
// removed.
func (beatMap *BeatMap) DrainLength() float64 {
	if len(beatMap.HitObjects) == 0 {
		return 0
	}

	length := beatMap.HitObjects[len(beatMap.HitObjects)-1].GetEndTime() - beatMap.HitObjects[0].GetStartTime()

	for _, b := range beatMap.Breaks {
		length -= b[1] - b[0]
	}

	return max(0, length)
}

// CountObjects returns circles, sliders, spinners and holds in that order.
func (beatMap *BeatMap) CountObjects() (circles, sliders, spinners, holds int) {
	for _, o := range beatMap.HitObjects {
		switch o.(type) {
		case *objects.Circle:
			circles++
		case *objects.Slider:
			sliders++
		case *objects.Spinner:
			spinners++
		case *objects.Hold:
			holds++
		}
	}

	return
}

package beatmap

import (
	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/framework/math/vector"
)

const stackDistance = 3.0

// ApplyStacking offsets overlapping notes so stacks lean to the upper left,
// reproducing the classic client's layout. Stack leniency and the approach
// window decide how far apart in time two notes may still stack, so this has
// to run after modifiers are applied to diff.
func ApplyStacking(beatMap *BeatMap, diff *difficulty.Difficulty) {
	if beatMap.Mode != 0 || len(beatMap.HitObjects) == 0 {
		return
	}

	stackThreshold := diff.PreemptU * beatMap.StackLeniency

	stackIndices := make([]int, len(beatMap.HitObjects))

	if beatMap.FormatVersion >= 6 {
		applyStacking(beatMap.HitObjects, stackIndices, stackThreshold)
	} else {
		applyStackingOld(beatMap.HitObjects, stackIndices, stackThreshold)
	}

	for i, hitObject := range beatMap.HitObjects {
		if stackIndices[i] == 0 {
			continue
		}

		offset := -float32(stackIndices[i]) * float32(diff.CircleRadiusU) / 10

		hitObject.SetStackOffset(vector.NewVec2f(offset, offset))
	}
}

func applyStacking(hitObjects []objects.IHitObject, stackIndices []int, stackThreshold float64) {
	for i := len(hitObjects) - 1; i > 0; i-- {
		n := i

		ci := i
		objectI := hitObjects[ci]

		if stackIndices[ci] != 0 || isSpinner(objectI) {
			continue
		}

		if _, isCircle := objectI.(*objects.Circle); isCircle {
			for n--; n >= 0; n-- {
				objectN := hitObjects[n]
				if isSpinner(objectN) {
					continue
				}

				if objectI.GetStartTime()-objectN.GetEndTime() > stackThreshold {
					break
				}

				// a circle on a slider tail pushes everything between them
				// away from the tail instead of forming a stack on the head
				if isSlider(objectN) && objectN.GetEndPosition().Dst(objectI.GetStartPosition()) < stackDistance {
					offset := stackIndices[ci] - stackIndices[n] + 1

					for j := n + 1; j <= i; j++ {
						if objectN.GetEndPosition().Dst(hitObjects[j].GetStartPosition()) < stackDistance {
							stackIndices[j] -= offset
						}
					}

					break
				}

				if objectN.GetStartPosition().Dst(objectI.GetStartPosition()) < stackDistance {
					stackIndices[n] = stackIndices[ci] + 1
					objectI = objectN
					ci = n
				}
			}
		} else if isSlider(objectI) {
			for n--; n >= 0; n-- {
				objectN := hitObjects[n]
				if isSpinner(objectN) {
					continue
				}

				if objectI.GetStartTime()-objectN.GetStartTime() > stackThreshold {
					break
				}

				if objectN.GetEndPosition().Dst(objectI.GetStartPosition()) < stackDistance {
					stackIndices[n] = stackIndices[ci] + 1
					objectI = objectN
					ci = n
				}
			}
		}
	}
}

func applyStackingOld(hitObjects []objects.IHitObject, stackIndices []int, stackThreshold float64) {
	for i := 0; i < len(hitObjects); i++ {
		currObject := hitObjects[i]
		if stackIndices[i] != 0 && !isSlider(currObject) {
			continue
		}

		startTime := currObject.GetEndTime()
		sliderStack := 0

		for j := i + 1; j < len(hitObjects); j++ {
			if hitObjects[j].GetStartTime()-stackThreshold > startTime {
				break
			}

			if hitObjects[j].GetStartPosition().Dst(currObject.GetStartPosition()) < stackDistance {
				stackIndices[i]++
				startTime = hitObjects[j].GetEndTime()
			} else if hitObjects[j].GetStartPosition().Dst(currObject.GetEndPosition()) < stackDistance {
				sliderStack++
				stackIndices[j] -= sliderStack
				startTime = hitObjects[j].GetEndTime()
			}
		}
	}
}

func isSpinner(hitObject objects.IHitObject) bool {
	_, ok := hitObject.(*objects.Spinner)
	return ok
}

func isSlider(hitObject objects.IHitObject) bool {
	_, ok := hitObject.(*objects.Slider)
	return ok
}

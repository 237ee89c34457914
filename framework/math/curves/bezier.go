package curves

import (
	"github.com/arisena/gopp/framework/math/vector"
)

// bezierTolerance is the flatness tolerance of the subdivision algorithm.
// It's a part of the path contract: changing it changes slider lengths and
// therefore difficulty values.
const bezierTolerance float32 = 0.25

// ApproximateBezier flattens an arbitrary-degree bezier curve into a
// piecewise-linear approximation using adaptive subdivision.
func ApproximateBezier(controlPoints []vector.Vector2f) []vector.Vector2f {
	output := make([]vector.Vector2f, 0)

	count := len(controlPoints)
	if count == 0 {
		return output
	}

	subdivisionBuffer1 := make([]vector.Vector2f, count)
	subdivisionBuffer2 := make([]vector.Vector2f, count*2-1)

	toFlatten := make([][]vector.Vector2f, 0)
	freeBuffers := make([][]vector.Vector2f, 0)

	deepCopy := make([]vector.Vector2f, count)
	copy(deepCopy, controlPoints)

	toFlatten = append(toFlatten, deepCopy)

	leftChild := subdivisionBuffer2

	for len(toFlatten) > 0 {
		parent := toFlatten[len(toFlatten)-1]
		toFlatten = toFlatten[:len(toFlatten)-1]

		if bezierIsFlatEnough(parent) {
			// If the control points we currently operate on are sufficiently "flat", we use
			// an extension of De Casteljau's algorithm to obtain a piecewise-linear approximation
			// of the bezier curve represented by our control points, consisting of the same amount
			// of points as there are control points.
			bezierApproximate(parent, &output, subdivisionBuffer1, subdivisionBuffer2, count)

			freeBuffers = append(freeBuffers, parent)

			continue
		}

		// If we do not yet have a sufficiently "flat" (in other words, detailed) approximation we keep
		// subdividing the curve we are currently operating on.
		var rightChild []vector.Vector2f
		if len(freeBuffers) > 0 {
			rightChild = freeBuffers[len(freeBuffers)-1]
			freeBuffers = freeBuffers[:len(freeBuffers)-1]
		} else {
			rightChild = make([]vector.Vector2f, count)
		}

		bezierSubdivide(parent, leftChild, rightChild, subdivisionBuffer1, count)

		// We re-use the buffer of the parent for one of the children, so that we save one allocation per iteration.
		copy(parent, leftChild[:count])

		toFlatten = append(toFlatten, rightChild)
		toFlatten = append(toFlatten, parent)
	}

	output = append(output, controlPoints[count-1])

	return output
}

func bezierIsFlatEnough(controlPoints []vector.Vector2f) bool {
	for i := 1; i < len(controlPoints)-1; i++ {
		delta := controlPoints[i-1].Sub(controlPoints[i].Scl(2)).Add(controlPoints[i+1])
		if delta.LenSq() > bezierTolerance*bezierTolerance*4 {
			return false
		}
	}

	return true
}

func bezierSubdivide(controlPoints, l, r, subdivisionBuffer []vector.Vector2f, count int) {
	midpoints := subdivisionBuffer
	copy(midpoints, controlPoints[:count])

	for i := 0; i < count; i++ {
		l[i] = midpoints[0]
		r[count-i-1] = midpoints[count-i-1]

		for j := 0; j < count-i-1; j++ {
			midpoints[j] = midpoints[j].Add(midpoints[j+1]).Scl(0.5)
		}
	}
}

func bezierApproximate(controlPoints []vector.Vector2f, output *[]vector.Vector2f, subdivisionBuffer1, subdivisionBuffer2 []vector.Vector2f, count int) {
	l := subdivisionBuffer2
	r := subdivisionBuffer1

	bezierSubdivide(controlPoints, l, r, subdivisionBuffer1, count)

	for i := 0; i < count-1; i++ {
		l[count+i] = r[i+1]
	}

	*output = append(*output, controlPoints[0])

	for i := 1; i < count-1; i++ {
		index := 2 * i
		p := l[index-1].Add(l[index].Scl(2)).Add(l[index+1]).Scl(0.25)
		*output = append(*output, p)
	}
}

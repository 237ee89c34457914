package curves

import (
	"github.com/arisena/gopp/framework/math/vector"
)

type CurveType uint8

const (
	CLine CurveType = iota
	CBezier
	CCatmull
	CCirArc
)

// MultiCurve is a slider path flattened to line pieces with cumulative
// lengths, optionally clamped or extended to a target pixel length.
type MultiCurve struct {
	points   []vector.Vector2f
	sections []float32
	length   float32
}

// NewMultiCurve builds the flattened path for the given control points.
// Bezier paths are split into segments at repeated control points
// (red anchors), perfect-circle paths require exactly 3 points and fall
// back to bezier otherwise.
func NewMultiCurve(typ CurveType, controlPoints []vector.Vector2f) *MultiCurve {
	flattened := make([]vector.Vector2f, 0)

	switch typ {
	case CLine:
		flattened = append(flattened, controlPoints...)
	case CCatmull:
		flattened = append(flattened, ApproximateCatmull(controlPoints)...)
	case CCirArc:
		if len(controlPoints) == 3 {
			if arc, ok := ApproximateCircularArc(controlPoints[0], controlPoints[1], controlPoints[2]); ok {
				flattened = append(flattened, arc...)
				break
			}
		}

		fallthrough
	default: // bezier, segmented on repeated anchors
		segment := make([]vector.Vector2f, 0)

		for i, p := range controlPoints {
			segment = append(segment, p)

			if i == len(controlPoints)-1 || (p == controlPoints[i+1] && len(segment) > 1) {
				flattened = append(flattened, ApproximateBezier(segment)...)
				segment = segment[:0]
			}
		}
	}

	if len(flattened) == 0 && len(controlPoints) > 0 {
		flattened = append(flattened, controlPoints[0], controlPoints[0])
	}

	mCurve := &MultiCurve{points: flattened}
	mCurve.calculateLength()

	return mCurve
}

// NewMultiCurveT builds the path and clamps it to expectedLength, or
// extends the last line piece when the flattened path falls short of the
// declared pixel length.
func NewMultiCurveT(typ CurveType, controlPoints []vector.Vector2f, expectedLength float64) *MultiCurve {
	mCurve := NewMultiCurve(typ, controlPoints)

	if expectedLength <= 0 || len(mCurve.points) < 2 {
		return mCurve
	}

	if float64(mCurve.length) > expectedLength {
		mCurve.truncate(float32(expectedLength))
	} else if float64(mCurve.length) < expectedLength {
		last := len(mCurve.points) - 1

		dir := mCurve.points[last].Sub(mCurve.points[last-1])
		if dir.LenSq() > 0 {
			missing := float32(expectedLength) - mCurve.length
			mCurve.points[last] = mCurve.points[last].Add(dir.Nor().Scl(missing))
			mCurve.calculateLength()
		}
	}

	return mCurve
}

func (mCurve *MultiCurve) calculateLength() {
	mCurve.sections = make([]float32, len(mCurve.points))
	mCurve.length = 0

	for i := 1; i < len(mCurve.points); i++ {
		mCurve.length += mCurve.points[i].Dst(mCurve.points[i-1])
		mCurve.sections[i] = mCurve.length
	}
}

func (mCurve *MultiCurve) truncate(target float32) {
	cut := len(mCurve.points)

	for i := 1; i < len(mCurve.points); i++ {
		if mCurve.sections[i] >= target {
			over := mCurve.sections[i] - target
			segLen := mCurve.sections[i] - mCurve.sections[i-1]

			if segLen > 0 && over > 0 {
				t := 1 - over/segLen
				mCurve.points[i] = mCurve.points[i-1].Add(mCurve.points[i].Sub(mCurve.points[i-1]).Scl(t))
			}

			cut = i + 1

			break
		}
	}

	mCurve.points = mCurve.points[:cut]
	mCurve.calculateLength()
}

// PointAt returns the position at progress t in [0, 1] along the path.
func (mCurve *MultiCurve) PointAt(t float32) vector.Vector2f {
	if len(mCurve.points) == 0 {
		return vector.NewVec2f(0, 0)
	}

	if len(mCurve.points) == 1 || mCurve.length == 0 {
		return mCurve.points[0]
	}

	desired := min(1, max(0, t)) * mCurve.length

	lo, hi := 1, len(mCurve.points)-1
	for lo < hi {
		m := (lo + hi) / 2
		if mCurve.sections[m] < desired {
			lo = m + 1
		} else {
			hi = m
		}
	}

	segLen := mCurve.sections[lo] - mCurve.sections[lo-1]
	if segLen == 0 {
		return mCurve.points[lo]
	}

	f := (desired - mCurve.sections[lo-1]) / segLen

	return mCurve.points[lo-1].Add(mCurve.points[lo].Sub(mCurve.points[lo-1]).Scl(f))
}

func (mCurve *MultiCurve) GetLength() float32 {
	return mCurve.length
}

func (mCurve *MultiCurve) GetStartPoint() vector.Vector2f {
	if len(mCurve.points) == 0 {
		return vector.NewVec2f(0, 0)
	}

	return mCurve.points[0]
}

func (mCurve *MultiCurve) GetEndPoint() vector.Vector2f {
	if len(mCurve.points) == 0 {
		return vector.NewVec2f(0, 0)
	}

	return mCurve.points[len(mCurve.points)-1]
}

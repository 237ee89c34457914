package curves

import (
	"math"

	"github.com/arisena/gopp/framework/math/math32"
	"github.com/arisena/gopp/framework/math/vector"
)

// circularArcTolerance controls how finely a perfect-circle arc is
// flattened. Authoritative constant of the reference path algorithm.
const circularArcTolerance float32 = 0.1

// ApproximateCircularArc flattens the arc passing through a, b and c.
// Degenerate (collinear) triples report ok=false so the caller can fall
// back to bezier interpolation, matching the reference decoder.
func ApproximateCircularArc(a, b, c vector.Vector2f) (points []vector.Vector2f, ok bool) {
	aSq := b.DstSq(c)
	bSq := a.DstSq(c)
	cSq := a.DstSq(b)

	// If we have a degenerate triangle where a side-length is almost zero,
	// the resulting circle is close to a straight line.
	if aSq == 0 || bSq == 0 || cSq == 0 {
		return nil, false
	}

	s := aSq * (bSq + cSq - aSq)
	t := bSq * (aSq + cSq - bSq)
	u := cSq * (aSq + bSq - cSq)

	sum := s + t + u
	if sum == 0 {
		return nil, false
	}

	center := a.Scl(s / sum).Add(b.Scl(t / sum)).Add(c.Scl(u / sum))
	dA := a.Sub(center)
	dC := c.Sub(center)

	r := dA.Len()

	thetaStart := float64(math32.Atan2(dA.Y, dA.X))
	thetaEnd := float64(math32.Atan2(dC.Y, dC.X))

	for thetaEnd < thetaStart {
		thetaEnd += 2 * math.Pi
	}

	dir := 1.0
	thetaRange := thetaEnd - thetaStart

	// Decide in which direction to draw the circle, depending on which side of
	// AC B lies.
	orthoAtoC := c.Sub(a)
	orthoAtoC = vector.NewVec2f(orthoAtoC.Y, -orthoAtoC.X)

	if orthoAtoC.Dot(b.Sub(a)) < 0 {
		dir = -dir
		thetaRange = 2*math.Pi - thetaRange
	}

	// We select the amount of points for the approximation by requiring the discrete curvature
	// to be smaller than the provided tolerance. The exact angle required to meet the tolerance
	// is: 2 * Math.Acos(1 - TOLERANCE / r)
	amountPoints := 2
	if 2*r > float32(circularArcTolerance) {
		amountPoints = max(2, int(math.Ceil(thetaRange/(2*math.Acos(float64(1-circularArcTolerance/r))))))
	}

	points = make([]vector.Vector2f, 0, amountPoints)

	for i := 0; i < amountPoints; i++ {
		fract := float64(i) / float64(amountPoints-1)
		theta := thetaStart + dir*fract*thetaRange

		o := vector.NewVec2f(math32.Cos(float32(theta)), math32.Sin(float32(theta))).Scl(r)
		points = append(points, center.Add(o))
	}

	return points, true
}

package curves

import (
	"github.com/arisena/gopp/framework/math/vector"
)

// catmullDetail is the number of line pieces generated per control-point
// span. Authoritative, same as the reference decoder.
const catmullDetail = 50

// ApproximateCatmull converts a catmull-rom chain to a piecewise-linear
// approximation with catmullDetail pieces per span.
func ApproximateCatmull(controlPoints []vector.Vector2f) []vector.Vector2f {
	result := make([]vector.Vector2f, 0, (len(controlPoints)-1)*catmullDetail*2)

	for i := 0; i < len(controlPoints)-1; i++ {
		v1 := controlPoints[max(0, i-1)]
		v2 := controlPoints[i]

		v3 := v2
		if i < len(controlPoints)-1 {
			v3 = controlPoints[i+1]
		} else {
			v3 = v2.Add(v2).Sub(v1)
		}

		v4 := v3.Add(v3).Sub(v2)
		if i < len(controlPoints)-2 {
			v4 = controlPoints[i+2]
		}

		for c := 0; c < catmullDetail; c++ {
			result = append(result,
				catmullFindPoint(v1, v2, v3, v4, float32(c)/catmullDetail),
				catmullFindPoint(v1, v2, v3, v4, float32(c+1)/catmullDetail),
			)
		}
	}

	return result
}

func catmullFindPoint(vec1, vec2, vec3, vec4 vector.Vector2f, t float32) vector.Vector2f {
	t2 := t * t
	t3 := t * t2

	return vector.NewVec2f(
		0.5*(2*vec2.X+(-vec1.X+vec3.X)*t+(2*vec1.X-5*vec2.X+4*vec3.X-vec4.X)*t2+(-vec1.X+3*vec2.X-3*vec3.X+vec4.X)*t3),
		0.5*(2*vec2.Y+(-vec1.Y+vec3.Y)*t+(2*vec1.Y-5*vec2.Y+4*vec3.Y-vec4.Y)*t2+(-vec1.Y+3*vec2.Y-3*vec3.Y+vec4.Y)*t3),
	)
}

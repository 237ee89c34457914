package vector

import (
	"github.com/arisena/gopp/framework/math/math32"
)

// Vector2f is a 2D vector of float32 components, matching the precision
// the scoring authority uses for playfield coordinates.
type Vector2f struct {
	X, Y float32
}

func NewVec2f(x, y float32) Vector2f {
	return Vector2f{x, y}
}

func NewVec2d(x, y float64) Vector2f {
	return Vector2f{float32(x), float32(y)}
}

func (v Vector2f) X64() float64 {
	return float64(v.X)
}

func (v Vector2f) Y64() float64 {
	return float64(v.Y)
}

func (v Vector2f) Add(v1 Vector2f) Vector2f {
	return Vector2f{v.X + v1.X, v.Y + v1.Y}
}

func (v Vector2f) Sub(v1 Vector2f) Vector2f {
	return Vector2f{v.X - v1.X, v.Y - v1.Y}
}

func (v Vector2f) Mult(v1 Vector2f) Vector2f {
	return Vector2f{v.X * v1.X, v.Y * v1.Y}
}

// Scl scales both components by mag
func (v Vector2f) Scl(mag float32) Vector2f {
	return Vector2f{v.X * mag, v.Y * mag}
}

func (v Vector2f) AddS(x, y float32) Vector2f {
	return Vector2f{v.X + x, v.Y + y}
}

func (v Vector2f) Dot(v1 Vector2f) float32 {
	return v.X*v1.X + v.Y*v1.Y
}

func (v Vector2f) Len() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector2f) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Dst returns the distance between v and v1
func (v Vector2f) Dst(v1 Vector2f) float32 {
	return v.Sub(v1).Len()
}

func (v Vector2f) DstSq(v1 Vector2f) float32 {
	return v.Sub(v1).LenSq()
}

func (v Vector2f) Nor() Vector2f {
	length := v.Len()

	if length == 0 {
		return v
	}

	return Vector2f{v.X / length, v.Y / length}
}

// Rotate rotates the vector by rad radians counter-clockwise
func (v Vector2f) Rotate(rad float32) Vector2f {
	cos := math32.Cos(rad)
	sin := math32.Sin(rad)

	return Vector2f{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

func (v Vector2f) Mid(v1 Vector2f) Vector2f {
	return Vector2f{(v.X + v1.X) / 2, (v.Y + v1.Y) / 2}
}

func (v Vector2f) AngleRV(v1 Vector2f) float32 {
	return math32.Atan2(v.Y-v1.Y, v.X-v1.X)
}

func IsStraightLine(a, b, c Vector2f) bool {
	return (b.Y-a.Y)*(c.X-a.X)-(b.X-a.X)*(c.Y-a.Y) == 0
}

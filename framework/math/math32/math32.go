package math32

import "math"

const Pi = math.Pi

func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func Sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

func Cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}

	return v
}

func IsNaN(v float32) bool {
	return v != v
}

package mutils

import (
	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Integer | constraints.Float](v, minV, maxV T) T {
	return min(maxV, max(minV, v))
}

// Lerp linearly interpolates between a and b by t, not clamped to [0, 1]
func Lerp[T constraints.Integer | constraints.Float, V constraints.Float](a, b T, t V) T {
	return T(V(a) + V(b-a)*t)
}

func Signum[T constraints.Signed | constraints.Float](a T) T {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	}

	return 0
}

func Abs[T constraints.Signed | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}

	return a
}

package core

import "golang.org/x/exp/constraints"

func Clamp[T constraints.Ordered](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func Abs[T constraints.Signed | constraints.Float](value T) T {
	if value < 0 {
		return -value
	}
	return value
}

package util

import "golang.org/x/exp/constraints"

func Min[T constraints.Ordered](a T, b T) T {
	if a <= b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a T, b T) T {
	if a >= b {
		return a
	}
	return b
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v T, lo T, hi T) T {
	return Max(lo, Min(v, hi))
}

package stats

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Number — числовые типы, над которыми считается батч-статистика.
type Number interface {
	constraints.Integer | constraints.Float
}

// Median возвращает медиану выборки. Пустая выборка — ok=false.
func Median[T Number](xs []T) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(xs))
	for i, x := range xs {
		sorted[i] = float64(x)
	}
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// MinMax возвращает минимум и максимум выборки. Пустая выборка — ok=false.
func MinMax[T Number](xs []T) (T, T, bool) {
	if len(xs) == 0 {
		var zero T
		return zero, zero, false
	}
	minV, maxV := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < minV {
			minV = x
		}
		if x > maxV {
			maxV = x
		}
	}
	return minV, maxV, true
}

// Clamp ограничивает значение отрезком [lo, hi].
func Clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

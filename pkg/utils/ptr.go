package utils

import "math"

func ToPtr[T any](v T) *T {
	return &v
}

// Round2 округляет до двух знаков после запятой.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package util samples timing functions into look-up tables.
package util

import (
	"github.com/matt-g-everett/cssanim/timing"
)

// GenerateLut samples fn at length evenly spaced points of [0, 1].
func GenerateLut(fn timing.Function, length int) []float64 {
	if length <= 0 {
		return nil
	}
	lut := make([]float64, length)
	if length == 1 {
		lut[0] = fn.Value(1)
		return lut
	}
	step := 1.0 / float64(length-1)
	for i := range lut {
		lut[i] = fn.Value(float64(i) * step)
	}
	return lut
}

// GenerateMirroredLut samples fn rising over the first half of the table and
// falling over the second, for cyclic effects.
func GenerateMirroredLut(fn timing.Function, length int) []float64 {
	increment := 1.0 / float64(length/2)
	lut := make([]float64, length)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := fn.Value(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	return lut
}

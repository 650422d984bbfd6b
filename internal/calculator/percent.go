package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrInvalidBase  = errors.New("base must be positive")
	ErrNoValues     = errors.New("no values provided")
	ErrTooFewValues = errors.New("at least two values required")
)

// PercentChange returns the percentage move from base to v.
func PercentChange(base, v float64) (float64, error) {
	if base <= 0 {
		return 0, ErrInvalidBase
	}
	return (v - base) / base * 100, nil
}

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 { return math.Round(x*100) / 100 }

// Round1 rounds half away from zero to one decimal.
func Round1(x float64) float64 { return math.Round(x*10) / 10 }

// Mean returns the arithmetic mean.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrNoValues
	}
	return stat.Mean(xs, nil), nil
}

// PopStdDev returns the population standard deviation (divisor n).
func PopStdDev(xs []float64) (float64, error) {
	if len(xs) < 2 {
		return 0, ErrTooFewValues
	}
	return stat.PopStdDev(xs, nil), nil
}

// MaxFloor returns max(floor, xs...).
func MaxFloor(floor float64, xs []float64) float64 {
	return floats.Max(append([]float64{floor}, xs...))
}

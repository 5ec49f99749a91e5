package grid

import (
	"errors"
	"fmt"

	"OptionAnalyzer/internal/model"
	"OptionAnalyzer/internal/pricing"
)

var (
	ErrInvalidSize   = errors.New("axis size must be positive")
	ErrInvertedRange = errors.New("axis min exceeds max")
	ErrEmptyAxis     = errors.New("empty axis")
)

// Linspace returns n evenly spaced values from min to max inclusive.
// A single-point axis is [min].
func Linspace(min, max float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	if min > max {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvertedRange, min, max)
	}
	axis := make([]float64, n)
	if n == 1 {
		axis[0] = min
		return axis, nil
	}
	step := (max - min) / float64(n-1)
	for k := range axis {
		axis[k] = min + float64(k)*step
	}
	// Pin the endpoint against accumulated rounding.
	axis[n-1] = max
	return axis, nil
}

// BuildPnLGrids prices a call and a put at every (spot, volatility) pair and
// subtracts the purchase price. Cell [i][j] uses spotAxis[i] and volAxis[j].
func BuildPnLGrids(spotAxis, volAxis []float64, K, T, r, purchasePrice float64) (call, put model.PnLGrid, err error) {
	if len(spotAxis) == 0 || len(volAxis) == 0 {
		return nil, nil, ErrEmptyAxis
	}

	call = model.NewPnLGrid(len(spotAxis), len(volAxis))
	put = model.NewPnLGrid(len(spotAxis), len(volAxis))

	for i, spot := range spotAxis {
		for j, vol := range volAxis {
			c, err := pricing.Call(spot, K, T, r, vol)
			if err != nil {
				return nil, nil, fmt.Errorf("call at spot=%g vol=%g: %w", spot, vol, err)
			}
			p, err := pricing.Put(spot, K, T, r, vol)
			if err != nil {
				return nil, nil, fmt.Errorf("put at spot=%g vol=%g: %w", spot, vol, err)
			}
			call[i][j] = c - purchasePrice
			put[i][j] = p - purchasePrice
		}
	}
	return call, put, nil
}

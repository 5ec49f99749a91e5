package colormap

import (
	"errors"

	"OptionAnalyzer/internal/model"
)

// ErrEmptyGrid is returned when there is no value to derive a scale from.
var ErrEmptyGrid = errors.New("empty grid")

// Palette: reds for losses, greens for gains, lighter near zero.
const (
	DarkRed     = "#ff6666"
	MediumRed   = "#ff9999"
	LightRed    = "#ffcccc"
	LightGreen  = "#ccffcc"
	MediumGreen = "#99ff99"
	DarkGreen   = "#66ff66"
)

// Regime names which of the three scale shapes a grid produced.
type Regime string

const (
	RegimeMixed       Regime = "MIXED"
	RegimeNonPositive Regime = "NON_POSITIVE"
	RegimePositive    Regime = "POSITIVE"
)

// ClassifyGrid picks the regime from the grid's value range.
func ClassifyGrid(min, max float64) Regime {
	switch {
	case min < 0 && max > 0:
		return RegimeMixed
	case max <= 0:
		return RegimeNonPositive
	default:
		return RegimePositive
	}
}

// DeriveColorScale builds a diverging scale for grid whose zero crossing
// sits at zero's normalized position between the grid min and max.
func DeriveColorScale(grid model.PnLGrid) (model.ColorScale, error) {
	min, max := grid.Bounds()
	if min > max {
		return nil, ErrEmptyGrid
	}
	return ScaleForRange(min, max), nil
}

// ScaleForRange is DeriveColorScale for a known value range.
func ScaleForRange(min, max float64) model.ColorScale {
	switch ClassifyGrid(min, max) {
	case RegimeMixed:
		zeroPos := 0.5
		// min < 0 < max makes max == min impossible; guards the division only.
		if max != min {
			zeroPos = -min / (max - min)
		}
		return model.ColorScale{
			{Position: 0.0, Color: DarkRed},
			{Position: zeroPos * 0.7, Color: MediumRed},
			{Position: zeroPos, Color: LightRed},
			{Position: zeroPos + (1-zeroPos)*0.3, Color: LightGreen},
			{Position: 1.0, Color: DarkGreen},
		}
	case RegimeNonPositive:
		return model.ColorScale{
			{Position: 0.0, Color: DarkRed},
			{Position: 0.5, Color: MediumRed},
			{Position: 1.0, Color: LightRed},
		}
	default:
		return model.ColorScale{
			{Position: 0.0, Color: LightGreen},
			{Position: 0.5, Color: MediumGreen},
			{Position: 1.0, Color: DarkGreen},
		}
	}
}

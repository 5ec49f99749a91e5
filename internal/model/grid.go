package model

import "math"

// PnLGrid holds profit and loss values indexed by [spot index][volatility index].
type PnLGrid [][]float64

// NewPnLGrid allocates a rows × cols grid of zeros.
func NewPnLGrid(rows, cols int) PnLGrid {
	g := make(PnLGrid, rows)
	for i := range g {
		g[i] = make([]float64, cols)
	}
	return g
}

// Dims returns the number of rows and the length of the first row.
func (g PnLGrid) Dims() (rows, cols int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// Bounds returns the minimum and maximum cell value.
// An empty grid reports (+Inf, -Inf).
func (g PnLGrid) Bounds() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, row := range g {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

// ColorStop anchors one colour at a normalized position in [0, 1].
type ColorStop struct {
	Position float64 `json:"position"`
	Color    string  `json:"color"`
}

// ColorScale is an ordered list of stops, non-decreasing in position.
type ColorScale []ColorStop

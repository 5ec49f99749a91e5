package colormap

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"OptionAnalyzer/internal/model"
)

var ErrInvalidScale = errors.New("invalid color scale")

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rrggbb or #rgb.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("parse color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Normalize returns where value sits within [min, max], clamped to 0.0~1.0.
// A flat range maps everything to the middle.
func Normalize(value, min, max float64) (float64, error) {
	if max == min {
		return 0.5, nil
	}
	if max < min {
		return 0, errors.New("max must be >= min")
	}
	pos := (value - min) / (max - min)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// Validate checks that positions are non-decreasing from 0.0 to 1.0 and colours parse.
func Validate(scale model.ColorScale) error {
	if len(scale) < 2 {
		return fmt.Errorf("%w: need at least two stops, got %d", ErrInvalidScale, len(scale))
	}
	if scale[0].Position != 0 || scale[len(scale)-1].Position != 1 {
		return fmt.Errorf("%w: scale must span 0.0 to 1.0", ErrInvalidScale)
	}
	for i, s := range scale {
		if math.IsNaN(s.Position) {
			return fmt.Errorf("%w: stop %d has NaN position", ErrInvalidScale, i)
		}
		if i > 0 && s.Position < scale[i-1].Position {
			return fmt.Errorf("%w: stop %d at %g precedes %g", ErrInvalidScale, i, s.Position, scale[i-1].Position)
		}
		if _, err := ParseHex(s.Color); err != nil {
			return fmt.Errorf("%w: stop %d: %v", ErrInvalidScale, i, err)
		}
	}
	return nil
}

// ColorAt interpolates linearly between the two stops around pos.
func ColorAt(scale model.ColorScale, pos float64) (RGB, error) {
	if err := Validate(scale); err != nil {
		return RGB{}, err
	}
	pos = math.Min(math.Max(pos, 0), 1)

	hi := 1
	for hi < len(scale)-1 && scale[hi].Position < pos {
		hi++
	}
	lo := hi - 1

	a, _ := ParseHex(scale[lo].Color)
	b, _ := ParseHex(scale[hi].Color)
	span := scale[hi].Position - scale[lo].Position
	if span <= 0 {
		return b, nil
	}
	f := (pos - scale[lo].Position) / span
	return RGB{
		R: lerp(a.R, b.R, f),
		G: lerp(a.G, b.G, f),
		B: lerp(a.B, b.B, f),
	}, nil
}

// Lookup maps a raw grid value onto scale, given the grid's value range.
func Lookup(scale model.ColorScale, value, min, max float64) (RGB, error) {
	pos, err := Normalize(value, min, max)
	if err != nil {
		return RGB{}, err
	}
	return ColorAt(scale, pos)
}

// ColorGrid resolves every cell of grid to a #rrggbb colour.
func ColorGrid(grid model.PnLGrid, scale model.ColorScale) ([][]string, error) {
	min, max := grid.Bounds()
	if min > max {
		return nil, ErrEmptyGrid
	}
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = make([]string, len(row))
		for j, v := range row {
			c, err := Lookup(scale, v, min, max)
			if err != nil {
				return nil, err
			}
			out[i][j] = c.Hex()
		}
	}
	return out, nil
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

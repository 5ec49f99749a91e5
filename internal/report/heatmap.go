package report

import (
	"fmt"

	"OptionAnalyzer/internal/analyzer"
	"OptionAnalyzer/internal/colormap"
	"OptionAnalyzer/internal/model"
)

const (
	XAxisTitle    = "Volatility(%)"
	YAxisTitle    = "Spot Price($)"
	ColorbarTitle = "PnL ($)"
)

// HeatmapView is everything a chart widget needs to draw one surface.
// Rows follow the spot axis, columns the volatility axis.
type HeatmapView struct {
	Title         string           `json:"title"`
	XAxisTitle    string           `json:"x_axis_title"`
	YAxisTitle    string           `json:"y_axis_title"`
	ColorbarTitle string           `json:"colorbar_title"`
	XLabels       []string         `json:"x_labels"`
	YLabels       []string         `json:"y_labels"`
	Values        model.PnLGrid    `json:"values"`
	CellText      [][]string       `json:"cell_text"`
	HoverText     [][]string       `json:"hover_text"`
	CellColors    [][]string       `json:"cell_colors"`
	ColorScale    model.ColorScale `json:"color_scale"`
}

// SpotLabels formats the spot axis as $80.00.
func SpotLabels(axis []float64) []string {
	out := make([]string, len(axis))
	for i, v := range axis {
		out[i] = Money(v)
	}
	return out
}

// VolatilityLabels formats the volatility axis as 4.00%.
func VolatilityLabels(axis []float64) []string {
	out := make([]string, len(axis))
	for i, v := range axis {
		out[i] = Percent(v)
	}
	return out
}

// HoverText builds the per-cell tooltip.
func HoverText(spots, vols []float64, grid model.PnLGrid) [][]string {
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = fmt.Sprintf("Spot Price: %s\nVolatility: %s\nPnL: %s", Money(spots[i]), Percent(vols[j]), Money(v))
		}
	}
	return out
}

// CellText formats each PnL value for display inside its cell.
func CellText(grid model.PnLGrid) [][]string {
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = Money(v)
		}
	}
	return out
}

// BuildHeatmapView assembles the view of one surface of res.
func BuildHeatmapView(res *analyzer.Result, kind model.OptionKind) (*HeatmapView, error) {
	hm := res.Heatmap(kind)
	if rows, cols := hm.Grid.Dims(); rows != len(res.SpotAxis) || cols != len(res.VolAxis) {
		return nil, fmt.Errorf("%s grid is %dx%d, axes are %dx%d", kind, rows, cols, len(res.SpotAxis), len(res.VolAxis))
	}
	colors, err := colormap.ColorGrid(hm.Grid, hm.Scale)
	if err != nil {
		return nil, fmt.Errorf("%s cell colors: %w", kind, err)
	}
	return &HeatmapView{
		Title:         fmt.Sprintf("%s PnL", FormatKindTitle(kind)),
		XAxisTitle:    XAxisTitle,
		YAxisTitle:    YAxisTitle,
		ColorbarTitle: ColorbarTitle,
		XLabels:       VolatilityLabels(res.VolAxis),
		YLabels:       SpotLabels(res.SpotAxis),
		Values:        hm.Grid,
		CellText:      CellText(hm.Grid),
		HoverText:     HoverText(res.SpotAxis, res.VolAxis, hm.Grid),
		CellColors:    colors,
		ColorScale:    hm.Scale,
	}, nil
}

// FormatKindTitle returns "Call" or "Put".
func FormatKindTitle(kind model.OptionKind) string {
	if kind == model.Put {
		return "Put"
	}
	return "Call"
}

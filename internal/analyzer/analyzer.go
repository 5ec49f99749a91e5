package analyzer

import (
	"fmt"
	"time"

	"OptionAnalyzer/internal/colormap"
	"OptionAnalyzer/internal/grid"
	"OptionAnalyzer/internal/model"
	"OptionAnalyzer/internal/pricing"
)

// Heatmap is one PnL surface together with its colour scale.
type Heatmap struct {
	Kind   model.OptionKind `json:"kind"`
	Grid   model.PnLGrid    `json:"grid"`
	Scale  model.ColorScale `json:"color_scale"`
	Regime colormap.Regime  `json:"regime"`
	Min    float64          `json:"min"`
	Max    float64          `json:"max"`
}

// Result is the full output of one interaction.
type Result struct {
	Scenario  model.Scenario `json:"scenario"`
	CallValue float64        `json:"call_value"`
	PutValue  float64        `json:"put_value"`
	SpotAxis  []float64      `json:"spot_axis"`
	VolAxis   []float64      `json:"volatility_axis"`
	Call      Heatmap        `json:"call"`
	Put       Heatmap        `json:"put"`
}

// Heatmap returns the surface for kind.
func (r *Result) Heatmap(kind model.OptionKind) *Heatmap {
	if kind == model.Put {
		return &r.Put
	}
	return &r.Call
}

// Analyze validates sc and computes the point prices, both PnL grids and
// their colour scales. Each call works on its own copy of the scenario.
func Analyze(sc model.Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	call, put, err := pricing.PriceBoth(sc.Inputs())
	if err != nil {
		return nil, fmt.Errorf("price point: %w", err)
	}

	spotAxis, err := grid.Linspace(sc.MinSpot, sc.MaxSpot, sc.GridSize)
	if err != nil {
		return nil, fmt.Errorf("spot axis: %w", err)
	}
	volAxis, err := grid.Linspace(sc.MinVol, sc.MaxVol, sc.GridSize)
	if err != nil {
		return nil, fmt.Errorf("volatility axis: %w", err)
	}

	callGrid, putGrid, err := grid.BuildPnLGrids(spotAxis, volAxis, sc.Strike, sc.TimeYears(), sc.Rate, sc.PurchasePrice)
	if err != nil {
		return nil, fmt.Errorf("pnl grids: %w", err)
	}

	callMap, err := newHeatmap(model.Call, callGrid)
	if err != nil {
		return nil, err
	}
	putMap, err := newHeatmap(model.Put, putGrid)
	if err != nil {
		return nil, err
	}

	return &Result{
		Scenario:  sc,
		CallValue: call,
		PutValue:  put,
		SpotAxis:  spotAxis,
		VolAxis:   volAxis,
		Call:      callMap,
		Put:       putMap,
	}, nil
}

func newHeatmap(kind model.OptionKind, g model.PnLGrid) (Heatmap, error) {
	scale, err := colormap.DeriveColorScale(g)
	if err != nil {
		return Heatmap{}, fmt.Errorf("%s color scale: %w", kind, err)
	}
	min, max := g.Bounds()
	return Heatmap{
		Kind:   kind,
		Grid:   g,
		Scale:  scale,
		Regime: colormap.ClassifyGrid(min, max),
		Min:    min,
		Max:    max,
	}, nil
}

// BuildRecord converts res into the rows persisted for one save: the option
// price (not PnL) at every (spot, volatility) shock, all calls then all puts.
func BuildRecord(res *Result) (*model.CalculationRecord, error) {
	sc := res.Scenario
	rec := &model.CalculationRecord{
		Inputs:    sc.Inputs(),
		Outputs:   make([]model.OutputRow, 0, 2*len(res.SpotAxis)*len(res.VolAxis)),
		CreatedAt: time.Now(),
	}
	for _, kind := range model.Kinds {
		for _, spot := range res.SpotAxis {
			for _, vol := range res.VolAxis {
				price, err := pricing.Price(kind, spot, sc.Strike, sc.TimeYears(), sc.Rate, vol)
				if err != nil {
					return nil, fmt.Errorf("%s at spot=%g vol=%g: %w", kind, spot, vol, err)
				}
				rec.Outputs = append(rec.Outputs, model.OutputRow{
					VolatilityShock: vol,
					StockPriceShock: spot,
					OptionPrice:     price,
					Kind:            kind,
				})
			}
		}
	}
	return rec, nil
}

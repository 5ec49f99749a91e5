package model

import "time"

// OutputRow is one priced cell of a saved heatmap.
type OutputRow struct {
	VolatilityShock float64    `json:"volatility_shock"`
	StockPriceShock float64    `json:"stock_price_shock"`
	OptionPrice     float64    `json:"option_price"`
	Kind            OptionKind `json:"kind"`
}

// IsCall reports whether the row prices a call.
func (r OutputRow) IsCall() bool { return r.Kind == Call }

// CalculationRecord is one saved input set and all of its output rows.
// Records are written once and never updated.
type CalculationRecord struct {
	ID        int64         `json:"calculation_id"`
	Inputs    PricingInputs `json:"inputs"`
	Outputs   []OutputRow   `json:"outputs,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// CalculationSummary is a record header without its output rows.
type CalculationSummary struct {
	ID          int64         `json:"calculation_id"`
	Inputs      PricingInputs `json:"inputs"`
	OutputCount int           `json:"output_count"`
	CreatedAt   time.Time     `json:"created_at"`
}

package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks parameters rejected at the boundary before pricing.
var ErrInvalidInput = errors.New("invalid input")

// DaysPerYear converts maturity in days to the year fraction used by the engine.
const DaysPerYear = 365.0

// MaxGridSize caps the heatmap resolution accepted from callers.
const MaxGridSize = 50

// PricingInputs holds the five Black-Scholes parameters for one evaluation.
type PricingInputs struct {
	Spot       float64 `json:"spot" yaml:"spot"`
	Strike     float64 `json:"strike" yaml:"strike"`
	TimeYears  float64 `json:"time_years" yaml:"time_years"`
	Rate       float64 `json:"rate" yaml:"rate"`
	Volatility float64 `json:"volatility" yaml:"volatility"`
}

// Validate rejects inputs for which the pricing formula is undefined.
// Zero time or volatility is allowed and prices at intrinsic value.
func (in PricingInputs) Validate() error {
	for name, v := range map[string]float64{
		"spot": in.Spot, "strike": in.Strike, "time_years": in.TimeYears,
		"rate": in.Rate, "volatility": in.Volatility,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidInput, name)
		}
	}
	if in.Spot <= 0 {
		return fmt.Errorf("%w: spot must be positive, got %g", ErrInvalidInput, in.Spot)
	}
	if in.Strike <= 0 {
		return fmt.Errorf("%w: strike must be positive, got %g", ErrInvalidInput, in.Strike)
	}
	if in.TimeYears < 0 {
		return fmt.Errorf("%w: time_years must be >= 0, got %g", ErrInvalidInput, in.TimeYears)
	}
	if in.Volatility < 0 {
		return fmt.Errorf("%w: volatility must be >= 0, got %g", ErrInvalidInput, in.Volatility)
	}
	return nil
}

// Scenario is everything one user interaction supplies: the point inputs,
// the purchase price and the heatmap axis ranges.
type Scenario struct {
	Spot          float64 `json:"spot" yaml:"spot"`
	Strike        float64 `json:"strike" yaml:"strike"`
	MaturityDays  int     `json:"maturity_days" yaml:"maturity_days"`
	Volatility    float64 `json:"volatility" yaml:"volatility"`
	Rate          float64 `json:"rate" yaml:"rate"`
	PurchasePrice float64 `json:"purchase_price" yaml:"purchase_price"`
	MinSpot       float64 `json:"min_spot" yaml:"min_spot"`
	MaxSpot       float64 `json:"max_spot" yaml:"max_spot"`
	MinVol        float64 `json:"min_volatility" yaml:"min_volatility"`
	MaxVol        float64 `json:"max_volatility" yaml:"max_volatility"`
	GridSize      int     `json:"grid_size" yaml:"grid_size"`
}

// TimeYears returns the maturity as a year fraction.
func (s Scenario) TimeYears() float64 {
	return float64(s.MaturityDays) / DaysPerYear
}

// Inputs returns the point pricing inputs of the scenario.
func (s Scenario) Inputs() PricingInputs {
	return PricingInputs{
		Spot:       s.Spot,
		Strike:     s.Strike,
		TimeYears:  s.TimeYears(),
		Rate:       s.Rate,
		Volatility: s.Volatility,
	}
}

// Validate applies the same bounds the input form enforces.
func (s Scenario) Validate() error {
	if err := s.Inputs().Validate(); err != nil {
		return err
	}
	if s.MaturityDays < 1 {
		return fmt.Errorf("%w: maturity_days must be >= 1, got %d", ErrInvalidInput, s.MaturityDays)
	}
	if s.Volatility > 1 {
		return fmt.Errorf("%w: volatility must be within [0, 1], got %g", ErrInvalidInput, s.Volatility)
	}
	if s.Rate < 0 {
		return fmt.Errorf("%w: rate must be >= 0, got %g", ErrInvalidInput, s.Rate)
	}
	if s.PurchasePrice < 0 || math.IsNaN(s.PurchasePrice) || math.IsInf(s.PurchasePrice, 0) {
		return fmt.Errorf("%w: purchase_price must be a finite value >= 0", ErrInvalidInput)
	}
	if !(s.MinSpot > 0) || !(s.MaxSpot > 0) || math.IsInf(s.MaxSpot, 0) {
		return fmt.Errorf("%w: spot range must be positive and finite", ErrInvalidInput)
	}
	if !(s.MinVol >= 0 && s.MaxVol <= 1) {
		return fmt.Errorf("%w: volatility range must be within [0, 1]", ErrInvalidInput)
	}
	if s.MinSpot > s.MaxSpot {
		return fmt.Errorf("%w: min_spot %g exceeds max_spot %g", ErrInvalidInput, s.MinSpot, s.MaxSpot)
	}
	if s.MinVol > s.MaxVol {
		return fmt.Errorf("%w: min_volatility %g exceeds max_volatility %g", ErrInvalidInput, s.MinVol, s.MaxVol)
	}
	if s.GridSize < 1 || s.GridSize > MaxGridSize {
		return fmt.Errorf("%w: grid_size must be within [1, %d], got %d", ErrInvalidInput, MaxGridSize, s.GridSize)
	}
	return nil
}

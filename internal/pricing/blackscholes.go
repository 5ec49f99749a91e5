package pricing

import (
	"errors"
	"fmt"
	"math"

	"OptionAnalyzer/internal/model"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrComputation is returned when the formula produces NaN or Inf.
var ErrComputation = errors.New("computation error")

// Price returns the Black-Scholes value of a European option.
// Callers must reject S <= 0 and K <= 0 beforehand (see model.PricingInputs.Validate).
// With T <= 0 or sigma <= 0 the option is worth its intrinsic value.
func Price(kind model.OptionKind, S, K, T, r, sigma float64) (float64, error) {
	call, err := callPrice(S, K, T, r, sigma)
	if err != nil {
		return 0, err
	}
	switch kind {
	case model.Call:
		return call, nil
	case model.Put:
		return putFromCall(call, S, K, T, r)
	default:
		return 0, fmt.Errorf("%w: unknown option kind %s", model.ErrInvalidInput, kind)
	}
}

// Call prices a European call.
func Call(S, K, T, r, sigma float64) (float64, error) {
	return Price(model.Call, S, K, T, r, sigma)
}

// Put prices a European put through put-call parity.
func Put(S, K, T, r, sigma float64) (float64, error) {
	return Price(model.Put, S, K, T, r, sigma)
}

// PriceBoth validates in and returns the call and put values, sharing one call evaluation.
func PriceBoth(in model.PricingInputs) (call, put float64, err error) {
	if err := in.Validate(); err != nil {
		return 0, 0, err
	}
	call, err = callPrice(in.Spot, in.Strike, in.TimeYears, in.Rate, in.Volatility)
	if err != nil {
		return 0, 0, err
	}
	put, err = putFromCall(call, in.Spot, in.Strike, in.TimeYears, in.Rate)
	if err != nil {
		return 0, 0, err
	}
	return call, put, nil
}

func callPrice(S, K, T, r, sigma float64) (float64, error) {
	// Must run before any log or sqrt below.
	if T <= 0 || sigma <= 0 {
		return math.Max(S-K, 0), nil
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	call := S*normCDF(d1) - K*math.Exp(-r*T)*normCDF(d2)
	if !isFinite(call) {
		return 0, fmt.Errorf("%w: call price %v for S=%g K=%g T=%g r=%g sigma=%g",
			ErrComputation, call, S, K, T, r, sigma)
	}
	return math.Max(call, 0), nil
}

func putFromCall(call, S, K, T, r float64) (float64, error) {
	put := parityPut(call, S, K, T, r)
	if !isFinite(put) {
		return 0, fmt.Errorf("%w: put price %v for S=%g K=%g T=%g r=%g",
			ErrComputation, put, S, K, T, r)
	}
	return math.Max(put, 0), nil
}

// parityPut is P = C - S + K*e^(-rT), unclamped.
func parityPut(call, S, K, T, r float64) float64 {
	return call - S + K*math.Exp(-r*T)
}

func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

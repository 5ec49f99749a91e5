package pricing

import (
	"errors"
	"math"
	"testing"

	"OptionAnalyzer/internal/model"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPrice_ReferenceCase(t *testing.T) {
	// S=100, K=100, T=1, r=0.05, sigma=0.2
	call, err := Call(100, 100, 1, 0.05, 0.2)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	put, err := Put(100, 100, 1, 0.05, 0.2)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !almostEqual(call, 10.450583572185565, 1e-6) {
		t.Errorf("call price: got %.10f", call)
	}
	if !almostEqual(put, 5.573526022256971, 1e-6) {
		t.Errorf("put price: got %.10f", put)
	}
}

func TestPriceBoth_MatchesSingleKinds(t *testing.T) {
	in := model.PricingInputs{Spot: 95, Strike: 105, TimeYears: 0.5, Rate: 0.03, Volatility: 0.35}
	call, put, err := PriceBoth(in)
	if err != nil {
		t.Fatalf("price both: %v", err)
	}
	wantCall, _ := Price(model.Call, in.Spot, in.Strike, in.TimeYears, in.Rate, in.Volatility)
	wantPut, _ := Price(model.Put, in.Spot, in.Strike, in.TimeYears, in.Rate, in.Volatility)
	if call != wantCall || put != wantPut {
		t.Errorf("got (%v, %v), want (%v, %v)", call, put, wantCall, wantPut)
	}
}

func TestPriceBoth_RejectsInvalidInputs(t *testing.T) {
	tests := []model.PricingInputs{
		{Spot: 0, Strike: 100, TimeYears: 1, Rate: 0.05, Volatility: 0.2},
		{Spot: 100, Strike: -1, TimeYears: 1, Rate: 0.05, Volatility: 0.2},
		{Spot: 100, Strike: 100, TimeYears: -1, Rate: 0.05, Volatility: 0.2},
		{Spot: math.NaN(), Strike: 100, TimeYears: 1, Rate: 0.05, Volatility: 0.2},
	}
	for _, in := range tests {
		if _, _, err := PriceBoth(in); !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestPrice_PutCallParity(t *testing.T) {
	spots := []float64{60, 90, 100, 110, 150}
	strikes := []float64{80, 100, 120}
	times := []float64{0, 0.1, 1, 3}
	rates := []float64{0, 0.02, 0.08}
	vols := []float64{0, 0.1, 0.3, 0.9}

	for _, S := range spots {
		for _, K := range strikes {
			for _, T := range times {
				for _, r := range rates {
					for _, v := range vols {
						call, err := Call(S, K, T, r, v)
						if err != nil {
							t.Fatalf("call: %v", err)
						}
						put, err := Put(S, K, T, r, v)
						if err != nil {
							t.Fatalf("put: %v", err)
						}
						raw := parityPut(call, S, K, T, r)
						want := math.Max(raw, 0)
						if !almostEqual(put, want, 1e-9) {
							t.Errorf("S=%g K=%g T=%g r=%g v=%g: put %.12f, parity %.12f", S, K, T, r, v, put, raw)
						}
					}
				}
			}
		}
	}
}

func TestPrice_PutMatchesClosedForm(t *testing.T) {
	S, K, T, r, v := 100.0, 110.0, 0.75, 0.04, 0.25
	put, err := Put(S, K, T, r, v)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	d1 := (math.Log(S/K) + (r+0.5*v*v)*T) / (v * math.Sqrt(T))
	d2 := d1 - v*math.Sqrt(T)
	want := K*math.Exp(-r*T)*normCDF(-d2) - S*normCDF(-d1)
	if !almostEqual(put, want, 1e-9) {
		t.Errorf("put %.12f, closed form %.12f", put, want)
	}
}

func TestPrice_IntrinsicValueAtExpiry(t *testing.T) {
	tests := []struct {
		S, K     float64
		call, put float64
	}{
		{100, 100, 0, 0},
		{120, 100, 20, 0},
		{90, 100, 0, 10},
		{0.5, 250, 0, 249.5},
	}
	for _, tt := range tests {
		for _, r := range []float64{0, 0.05, 0.2} {
			call, _ := Call(tt.S, tt.K, 0, r, 0.3)
			put, _ := Put(tt.S, tt.K, 0, r, 0.3)
			if !almostEqual(call, tt.call, 1e-12) {
				t.Errorf("S=%g K=%g r=%g: call %v, want %v", tt.S, tt.K, r, call, tt.call)
			}
			if !almostEqual(put, tt.put, 1e-12) {
				t.Errorf("S=%g K=%g r=%g: put %v, want %v", tt.S, tt.K, r, put, tt.put)
			}
		}
	}
}

func TestPrice_ZeroVolatilityAtTheMoney(t *testing.T) {
	for _, T := range []float64{0.25, 1, 2} {
		call, err := Call(100, 100, T, 0.05, 0)
		if err != nil {
			t.Fatalf("call: %v", err)
		}
		put, err := Put(100, 100, T, 0.05, 0)
		if err != nil {
			t.Fatalf("put: %v", err)
		}
		if call != 0 || put != 0 {
			t.Errorf("T=%g: expected zero prices, got call=%v put=%v", T, call, put)
		}
	}
}

func TestPrice_MonotonicInSpotAndVolatility(t *testing.T) {
	const K, T, r = 100.0, 0.5, 0.03

	for v := 0.05; v <= 0.8; v += 0.05 {
		prev := -1.0
		for S := 50.0; S <= 150; S += 2.5 {
			c, err := Call(S, K, T, r, v)
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if c < prev-1e-12 {
				t.Errorf("call decreased in spot at S=%g v=%g: %v < %v", S, v, c, prev)
			}
			prev = c
		}
	}

	for S := 50.0; S <= 150; S += 10 {
		prev := -1.0
		for v := 0.01; v <= 1.0; v += 0.01 {
			c, err := Call(S, K, T, r, v)
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if c < prev-1e-12 {
				t.Errorf("call decreased in volatility at S=%g v=%g: %v < %v", S, v, c, prev)
			}
			prev = c
		}
	}
}

func TestPrice_NonNegative(t *testing.T) {
	for _, S := range []float64{1, 20, 100, 400} {
		for _, K := range []float64{1, 50, 100, 500} {
			for _, T := range []float64{0, 0.01, 1, 10} {
				for _, v := range []float64{0, 0.01, 0.5, 1} {
					call, err := Call(S, K, T, 0.05, v)
					if err != nil {
						t.Fatalf("call: %v", err)
					}
					put, err := Put(S, K, T, 0.05, v)
					if err != nil {
						t.Fatalf("put: %v", err)
					}
					if call < 0 || put < 0 {
						t.Errorf("S=%g K=%g T=%g v=%g: negative price call=%v put=%v", S, K, T, v, call, put)
					}
				}
			}
		}
	}
}

func TestPrice_ComputationError(t *testing.T) {
	// e^(-rT) overflows to +Inf while Φ(d2) underflows to 0.
	_, err := Call(100, 100, 1, -1000, 0.2)
	if !errors.Is(err, ErrComputation) {
		t.Fatalf("expected ErrComputation, got %v", err)
	}
	_, err = Put(100, 100, 1, -1000, 0.2)
	if !errors.Is(err, ErrComputation) {
		t.Fatalf("expected ErrComputation for put, got %v", err)
	}
}

func TestPrice_UnknownKind(t *testing.T) {
	if _, err := Price(model.OptionKind(7), 100, 100, 1, 0.05, 0.2); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

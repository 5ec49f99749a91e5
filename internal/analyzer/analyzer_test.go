package analyzer

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"OptionAnalyzer/internal/colormap"
	"OptionAnalyzer/internal/model"
	"OptionAnalyzer/internal/pricing"
	"OptionAnalyzer/internal/recorder"
)

func defaultScenario() model.Scenario {
	return model.Scenario{
		Spot:          100,
		Strike:        100,
		MaturityDays:  365,
		Volatility:    0.2,
		Rate:          0.05,
		PurchasePrice: 10,
		MinSpot:       80,
		MaxSpot:       120,
		MinVol:        0.04,
		MaxVol:        0.30,
		GridSize:      10,
	}
}

type failingRecorder struct {
	recorder.NoopRecorder
	calls int
}

func (f *failingRecorder) SaveCalculation(_ context.Context, _ *model.CalculationRecord) (int64, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestAnalyze_DefaultScenario(t *testing.T) {
	res, err := Analyze(defaultScenario())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if math.Abs(res.CallValue-10.45) > 0.01 {
		t.Errorf("call value %.4f, want ~10.45", res.CallValue)
	}
	if math.Abs(res.PutValue-5.57) > 0.01 {
		t.Errorf("put value %.4f, want ~5.57", res.PutValue)
	}
	if len(res.SpotAxis) != 10 || len(res.VolAxis) != 10 {
		t.Fatalf("axes: %d x %d", len(res.SpotAxis), len(res.VolAxis))
	}
	for _, hm := range []*Heatmap{res.Heatmap(model.Call), res.Heatmap(model.Put)} {
		if rows, cols := hm.Grid.Dims(); rows != 10 || cols != 10 {
			t.Errorf("%s grid dims %dx%d", hm.Kind, rows, cols)
		}
		if err := colormap.Validate(hm.Scale); err != nil {
			t.Errorf("%s scale: %v", hm.Kind, err)
		}
	}

	// Spot 80..120 around a 10.00 purchase spans both losses and gains.
	if res.Call.Regime != colormap.RegimeMixed {
		t.Errorf("call regime %s, want MIXED", res.Call.Regime)
	}
	want, _ := pricing.Call(res.SpotAxis[9], 100, 1, 0.05, res.VolAxis[0])
	if res.Call.Grid[9][0] != want-10 {
		t.Errorf("call[9][0] = %v, want %v", res.Call.Grid[9][0], want-10)
	}
	if res.Put.Kind != model.Put {
		t.Errorf("put heatmap kind %s", res.Put.Kind)
	}
}

func TestAnalyze_RejectsInvalidScenario(t *testing.T) {
	tests := []func(*model.Scenario){
		func(s *model.Scenario) { s.Spot = 0 },
		func(s *model.Scenario) { s.Strike = -5 },
		func(s *model.Scenario) { s.MaturityDays = 0 },
		func(s *model.Scenario) { s.Volatility = 1.5 },
		func(s *model.Scenario) { s.PurchasePrice = -1 },
		func(s *model.Scenario) { s.MinSpot, s.MaxSpot = 120, 80 },
		func(s *model.Scenario) { s.MinVol, s.MaxVol = 0.3, 0.1 },
		func(s *model.Scenario) { s.GridSize = 0 },
	}
	for i, mutate := range tests {
		sc := defaultScenario()
		mutate(&sc)
		if _, err := Analyze(sc); !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestAnalyze_ZeroVolatilityAxis(t *testing.T) {
	sc := defaultScenario()
	sc.MinVol, sc.MaxVol = 0, 0
	sc.PurchasePrice = 0
	res, err := Analyze(sc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	// Zero volatility prices every call at intrinsic value.
	for i, spot := range res.SpotAxis {
		if got, want := res.Call.Grid[i][0], math.Max(spot-100, 0); got != want {
			t.Errorf("row %d: %v, want %v", i, got, want)
		}
	}
}

func TestBuildRecord_RowLayout(t *testing.T) {
	res, err := Analyze(defaultScenario())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	rec, err := BuildRecord(res)
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	if len(rec.Outputs) != 200 {
		t.Fatalf("expected 200 outputs, got %d", len(rec.Outputs))
	}
	for i, o := range rec.Outputs {
		wantCall := i < 100
		if o.IsCall() != wantCall {
			t.Fatalf("row %d: is_call=%v", i, o.IsCall())
		}
	}
	// Stored prices are raw option values, the grid holds PnL.
	first := rec.Outputs[0]
	if math.Abs(first.OptionPrice-(res.Call.Grid[0][0]+10)) > 1e-9 {
		t.Errorf("first row price %v, grid %v", first.OptionPrice, res.Call.Grid[0][0])
	}
	if first.StockPriceShock != 80 || first.VolatilityShock != 0.04 {
		t.Errorf("first row shocks: %+v", first)
	}
	if rec.Inputs.TimeYears != 1 {
		t.Errorf("time years %v", rec.Inputs.TimeYears)
	}
}

func TestService_SaveFailureKeepsResult(t *testing.T) {
	rec := &failingRecorder{}
	svc := NewService(rec)

	res, saved, err := svc.AnalyzeAndSave(context.Background(), defaultScenario())
	if err == nil {
		t.Fatal("expected save error")
	}
	if saved != nil {
		t.Errorf("expected no record, got %+v", saved)
	}
	if res == nil || len(res.Call.Grid) != 10 {
		t.Fatal("expected analysis to survive a failed save")
	}
	if rec.calls != 1 {
		t.Errorf("expected one save attempt, got %d", rec.calls)
	}
}

func TestService_SaveToSQLite(t *testing.T) {
	db, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "options.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	svc := NewService(db)
	_, saved, err := svc.AnalyzeAndSave(context.Background(), defaultScenario())
	if err != nil {
		t.Fatalf("analyze and save: %v", err)
	}
	if saved.ID <= 0 {
		t.Fatalf("expected id, got %d", saved.ID)
	}

	loaded, err := db.LoadCalculation(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Outputs) != 200 {
		t.Errorf("expected 200 stored outputs, got %d", len(loaded.Outputs))
	}
	if loaded.Inputs.Spot != 100 || loaded.Inputs.Volatility != 0.2 {
		t.Errorf("stored inputs: %+v", loaded.Inputs)
	}
}

func TestService_NoopRecorder(t *testing.T) {
	svc := NewService(recorder.NewNoopRecorder())
	res, err := Analyze(defaultScenario())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if _, err := svc.Save(context.Background(), res); !errors.Is(err, recorder.ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

package recorder

import (
	"context"

	"OptionAnalyzer/internal/model"
)

// NoopRecorder is used when SQLite is not configured. Saves fail with ErrDisabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) SaveCalculation(_ context.Context, _ *model.CalculationRecord) (int64, error) {
	return 0, ErrDisabled
}

func (n *NoopRecorder) LoadCalculation(_ context.Context, _ int64) (*model.CalculationRecord, error) {
	return nil, ErrDisabled
}

func (n *NoopRecorder) ListCalculations(_ context.Context, _ int) ([]model.CalculationSummary, error) {
	return nil, nil
}

func (n *NoopRecorder) Close() error { return nil }

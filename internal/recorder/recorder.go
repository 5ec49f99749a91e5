package recorder

import (
	"context"
	"errors"

	"OptionAnalyzer/internal/model"
)

var (
	// ErrDisabled is returned by NoopRecorder when no database is configured.
	ErrDisabled = errors.New("persistence disabled")
	// ErrNotFound is returned when a calculation id does not exist.
	ErrNotFound = errors.New("calculation not found")
	// ErrEmptyRecord is returned when a record has no output rows to store.
	ErrEmptyRecord = errors.New("calculation has no outputs")
)

// Recorder persists calculations: one input row plus its output rows per save.
type Recorder interface {
	// SaveCalculation stores rec atomically and returns the generated id.
	SaveCalculation(ctx context.Context, rec *model.CalculationRecord) (int64, error)
	LoadCalculation(ctx context.Context, id int64) (*model.CalculationRecord, error)
	ListCalculations(ctx context.Context, limit int) ([]model.CalculationSummary, error)
	Close() error
}

package analyzer

import (
	"context"
	"fmt"
	"log"

	"OptionAnalyzer/internal/model"
	"OptionAnalyzer/internal/recorder"
)

// Service couples analysis with an injected Recorder.
type Service struct {
	Recorder recorder.Recorder
}

// NewService creates a Service.
func NewService(rec recorder.Recorder) *Service {
	return &Service{Recorder: rec}
}

// Save persists res. A failed save leaves res untouched so the caller can keep
// showing the computed surfaces.
func (s *Service) Save(ctx context.Context, res *Result) (*model.CalculationRecord, error) {
	rec, err := BuildRecord(res)
	if err != nil {
		return nil, fmt.Errorf("build record: %w", err)
	}
	id, err := s.Recorder.SaveCalculation(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("save calculation: %w", err)
	}
	rec.ID = id
	log.Printf("[INFO] calculation %d saved (%d outputs)", id, len(rec.Outputs))
	return rec, nil
}

// AnalyzeAndSave runs Analyze and then Save. The analysis is returned even when saving fails.
func (s *Service) AnalyzeAndSave(ctx context.Context, sc model.Scenario) (*Result, *model.CalculationRecord, error) {
	res, err := Analyze(sc)
	if err != nil {
		return nil, nil, err
	}
	rec, err := s.Save(ctx, res)
	if err != nil {
		return res, nil, err
	}
	return res, rec, nil
}

package scheduler

import (
	"context"
	"fmt"
	"log"

	"OptionAnalyzer/internal/analyzer"
	"OptionAnalyzer/internal/model"
	"OptionAnalyzer/internal/report"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic snapshots of a fixed scenario.
type Scheduler struct {
	Cron     *cron.Cron
	Service  *analyzer.Service
	Scenario model.Scenario
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler. Overlapping runs are skipped.
func NewScheduler(ctx context.Context, svc *analyzer.Service, sc model.Scenario) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Service:  svc,
		Scenario: sc,
		Ctx:      ctx,
	}
}

// RegisterSnapshot schedules the snapshot task. An empty spec registers nothing.
func (s *Scheduler) RegisterSnapshot(spec string) error {
	if spec == "" {
		log.Println("[INFO] snapshot schedule disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(spec, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	log.Printf("[INFO] snapshot task registered: %s", spec)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunSnapshotNow executes the snapshot task immediately and returns the saved record.
func (s *Scheduler) RunSnapshotNow() (*model.CalculationRecord, error) {
	res, rec, err := s.Service.AnalyzeAndSave(s.Ctx, s.Scenario)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] snapshot %d: call=%s put=%s", rec.ID, report.Money(res.CallValue), report.Money(res.PutValue))
	return rec, nil
}

func (s *Scheduler) snapshotTask() {
	log.Println("[INFO] running snapshot task")
	if _, err := s.RunSnapshotNow(); err != nil {
		log.Printf("[ERROR] snapshot: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"OptionAnalyzer/internal/analyzer"
	"OptionAnalyzer/internal/config"
	"OptionAnalyzer/internal/recorder"
	"OptionAnalyzer/internal/report"
	"OptionAnalyzer/internal/scheduler"
	"OptionAnalyzer/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] OptionAnalyzer starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, saving disabled: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		log.Println("[INFO] no sqlite path configured, saving disabled")
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	svc := analyzer.NewService(rec)

	// Sanity check the defaults once so a broken config shows up in the log, not the first request.
	if res, err := analyzer.Analyze(cfg.Defaults); err != nil {
		log.Fatalf("[FATAL] analyze defaults: %v", err)
	} else {
		log.Printf("[INFO] default scenario: call=%s put=%s", report.Money(res.CallValue), report.Money(res.PutValue))
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, svc, cfg.Defaults)
	if err := sched.RegisterSnapshot(cfg.Schedule.SnapshotCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: snapshot immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, saving default scenario now")
		if _, err := sched.RunSnapshotNow(); err != nil {
			log.Printf("[ERROR] snapshot on start: %v", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           server.NewRouter(server.NewHandler(svc, cfg.Defaults)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] http server listening on %s", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] http server: %v", err)
			cancel()
		}
	}()

	log.Println("[INFO] OptionAnalyzer is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
		log.Println("[WARN] server stopped unexpectedly, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] OptionAnalyzer stopped")
}

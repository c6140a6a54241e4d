package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kestrel-analytics/transition-engine/internal/api"
	"github.com/kestrel-analytics/transition-engine/internal/config"
	"github.com/kestrel-analytics/transition-engine/internal/engine"
	"github.com/kestrel-analytics/transition-engine/internal/monitoring"
	"github.com/kestrel-analytics/transition-engine/internal/store"
	"github.com/kestrel-analytics/transition-engine/internal/types"
)

func main() {
	logger := monitoring.NewLogger()

	// Configuration from environment with defaults
	configPath := os.Getenv("CONFIG_PATH")
	awardsPath := getEnv("AWARDS_PATH", "data/awards.json")
	contractsPath := getEnv("CONTRACTS_PATH", "data/contracts.json")
	patentsPath := os.Getenv("PATENTS_PATH")
	dataDir := getEnv("DATA_DIR", "data")
	port := getEnv("PORT", "8080")
	serveResults := os.Getenv("SERVE_RESULTS") == "true"

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("Configuration invalid", "error", err.Error())
		os.Exit(1)
	}
	if preset := os.Getenv("WEIGHT_PRESET"); preset != "" {
		cfg.Preset = preset
		if err := cfg.Validate(); err != nil {
			logger.Error("Configuration invalid", "error", err.Error())
			os.Exit(1)
		}
	}

	var awards []types.Award
	if err := loadJSON(awardsPath, &awards); err != nil {
		logger.Error("Failed to load awards", "path", awardsPath, "error", err.Error())
		os.Exit(1)
	}
	var contracts []types.Contract
	if err := loadJSON(contractsPath, &contracts); err != nil {
		logger.Error("Failed to load contracts", "path", contractsPath, "error", err.Error())
		os.Exit(1)
	}
	var patents []types.Patent
	if patentsPath != "" {
		// patent data is optional; a missing file degrades gracefully
		if err := loadJSON(patentsPath, &patents); err != nil {
			logger.Warn("Failed to load patents, continuing without", "path", patentsPath, "error", err.Error())
			patents = nil
		}
	}

	eng, err := engine.New(cfg, logger)
	if err != nil {
		logger.Error("Engine initialization failed", "error", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := eng.Run(ctx, awards, contracts, patents)
	if err != nil {
		logger.Error("Run failed", "error", err.Error())
		os.Exit(1)
	}

	db, err := store.NewDB(dataDir)
	if err != nil {
		logger.Error("Failed to open database", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	repo := store.NewRepository(db)
	if err := repo.SaveRun(result); err != nil {
		logger.Error("Failed to persist run", "run_id", result.RunID, "error", err.Error())
		os.Exit(1)
	}

	s := result.Summary
	logger.Info("Run Summary",
		"run_id", s.RunID,
		"preset", s.Preset,
		"awards_processed", s.AwardsProcessed,
		"awards_resolved", s.AwardsResolved,
		"awards_unresolved", s.AwardsUnresolved,
		"pairs_scored", s.PairsScored,
		"skipped_awards", s.SkippedAwards,
		"skipped_contracts", s.SkippedContracts,
		"defaulted_signals", s.DefaultedSignals,
		"detections_high", s.DetectionsHigh,
		"detections_likely", s.DetectionsLikely,
		"detections_possible", s.DetectionsPoss,
	)

	if !serveResults {
		return
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: api.NewServer(repo, logger).Router(),
	}

	go func() {
		logger.Info("Result API listening", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err.Error())
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err.Error())
	}
}

func loadJSON(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(out)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

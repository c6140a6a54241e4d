package engine

import (
	"time"

	"github.com/kestrel-analytics/transition-engine/internal/monitoring"
)

// Summary is the user-visible account of one run: resolution coverage,
// detections per confidence tier, and skipped/defaulted record counts.
type Summary struct {
	RunID            string        `json:"run_id"`
	Preset           string        `json:"preset"`
	AwardsProcessed  int64         `json:"awards_processed"`
	AwardsResolved   int64         `json:"awards_resolved"`
	AwardsUnresolved int64         `json:"awards_unresolved"`
	PairsScored      int64         `json:"pairs_scored"`
	SkippedAwards    int64         `json:"skipped_awards"`
	SkippedContracts int64         `json:"skipped_contracts"`
	DefaultedSignals int64         `json:"defaulted_signals"`
	DetectionsHigh   int64         `json:"detections_high"`
	DetectionsLikely int64         `json:"detections_likely"`
	DetectionsPoss   int64         `json:"detections_possible"`
	Duration         time.Duration `json:"duration_ns"`
}

func newSummary(runID, preset string, m monitoring.RunMetrics, duration time.Duration) Summary {
	return Summary{
		RunID:            runID,
		Preset:           preset,
		AwardsProcessed:  m.AwardsProcessed,
		AwardsResolved:   m.AwardsResolved,
		AwardsUnresolved: m.AwardsUnresolved,
		PairsScored:      m.PairsScored,
		SkippedAwards:    m.SkippedAwards,
		SkippedContracts: m.SkippedContracts,
		DefaultedSignals: m.DefaultedSignals,
		DetectionsHigh:   m.DetectionsHigh,
		DetectionsLikely: m.DetectionsLikely,
		DetectionsPoss:   m.DetectionsPoss,
		Duration:         duration,
	}
}

// TotalDetections returns detections across all tiers.
func (s Summary) TotalDetections() int64 {
	return s.DetectionsHigh + s.DetectionsLikely + s.DetectionsPoss
}

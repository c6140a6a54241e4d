package monitoring

import (
	"sync/atomic"
	"time"
)

// RunMetrics holds counters accumulated across workers during a run.
// All fields are updated atomically; workers never share other state.
type RunMetrics struct {
	AwardsProcessed  int64
	AwardsResolved   int64
	AwardsUnresolved int64
	PairsScored      int64
	SkippedAwards    int64
	SkippedContracts int64
	DefaultedSignals int64
	DetectionsHigh   int64
	DetectionsLikely int64
	DetectionsPoss   int64
	StartTime        time.Time
}

// NewRunMetrics creates metrics for a run starting now.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{StartTime: time.Now()}
}

func (m *RunMetrics) IncAwardsProcessed()  { atomic.AddInt64(&m.AwardsProcessed, 1) }
func (m *RunMetrics) IncAwardsResolved()   { atomic.AddInt64(&m.AwardsResolved, 1) }
func (m *RunMetrics) IncAwardsUnresolved() { atomic.AddInt64(&m.AwardsUnresolved, 1) }
func (m *RunMetrics) IncPairsScored()      { atomic.AddInt64(&m.PairsScored, 1) }
func (m *RunMetrics) IncSkippedAwards()    { atomic.AddInt64(&m.SkippedAwards, 1) }
func (m *RunMetrics) IncSkippedContracts() { atomic.AddInt64(&m.SkippedContracts, 1) }

// AddSkippedContracts records contracts rejected during index build.
func (m *RunMetrics) AddSkippedContracts(n int64) { atomic.AddInt64(&m.SkippedContracts, n) }

// AddDefaultedSignals records n signals that fell back to their neutral
// defaults for one scored pair.
func (m *RunMetrics) AddDefaultedSignals(n int64) { atomic.AddInt64(&m.DefaultedSignals, n) }

// IncDetection counts a detection under its tier.
func (m *RunMetrics) IncDetection(tier string) {
	switch tier {
	case "HIGH":
		atomic.AddInt64(&m.DetectionsHigh, 1)
	case "LIKELY":
		atomic.AddInt64(&m.DetectionsLikely, 1)
	case "POSSIBLE":
		atomic.AddInt64(&m.DetectionsPoss, 1)
	}
}

// Snapshot returns a consistent copy of the counters.
func (m *RunMetrics) Snapshot() RunMetrics {
	return RunMetrics{
		AwardsProcessed:  atomic.LoadInt64(&m.AwardsProcessed),
		AwardsResolved:   atomic.LoadInt64(&m.AwardsResolved),
		AwardsUnresolved: atomic.LoadInt64(&m.AwardsUnresolved),
		PairsScored:      atomic.LoadInt64(&m.PairsScored),
		SkippedAwards:    atomic.LoadInt64(&m.SkippedAwards),
		SkippedContracts: atomic.LoadInt64(&m.SkippedContracts),
		DefaultedSignals: atomic.LoadInt64(&m.DefaultedSignals),
		DetectionsHigh:   atomic.LoadInt64(&m.DetectionsHigh),
		DetectionsLikely: atomic.LoadInt64(&m.DetectionsLikely),
		DetectionsPoss:   atomic.LoadInt64(&m.DetectionsPoss),
		StartTime:        m.StartTime,
	}
}

// TotalDetections returns the number of detections across all tiers.
func (m *RunMetrics) TotalDetections() int64 {
	return atomic.LoadInt64(&m.DetectionsHigh) +
		atomic.LoadInt64(&m.DetectionsLikely) +
		atomic.LoadInt64(&m.DetectionsPoss)
}

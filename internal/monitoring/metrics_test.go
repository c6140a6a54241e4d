package monitoring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMetricsConcurrentUpdates(t *testing.T) {
	m := NewRunMetrics()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				m.IncAwardsProcessed()
				m.IncPairsScored()
				m.IncDetection("HIGH")
				m.AddDefaultedSignals(2)
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.Equal(t, int64(800), snap.AwardsProcessed)
	assert.Equal(t, int64(800), snap.PairsScored)
	assert.Equal(t, int64(800), snap.DetectionsHigh)
	assert.Equal(t, int64(1600), snap.DefaultedSignals)
	assert.Equal(t, int64(800), m.TotalDetections())
}

func TestIncDetectionByTier(t *testing.T) {
	m := NewRunMetrics()
	m.IncDetection("HIGH")
	m.IncDetection("LIKELY")
	m.IncDetection("LIKELY")
	m.IncDetection("POSSIBLE")
	m.IncDetection("") // below reporting floor, not counted

	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.DetectionsHigh)
	assert.Equal(t, int64(2), snap.DetectionsLikely)
	assert.Equal(t, int64(1), snap.DetectionsPoss)
	assert.Equal(t, int64(4), m.TotalDetections())
}

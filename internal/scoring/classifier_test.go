package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrel-analytics/transition-engine/internal/config"
	"github.com/kestrel-analytics/transition-engine/internal/types"
)

func TestClassify(t *testing.T) {
	thresholds := config.Thresholds{High: 0.85, Likely: 0.65, ReportingFloor: 0.40}

	tests := []struct {
		name     string
		score    float64
		expected types.Tier
	}{
		{"exactly at high threshold is HIGH", 0.85, types.TierHigh},
		{"just below high threshold is LIKELY", 0.849999, types.TierLikely},
		{"well above high threshold is HIGH", 0.99, types.TierHigh},
		{"maximum score is HIGH", 1.0, types.TierHigh},
		{"exactly at likely threshold is LIKELY", 0.65, types.TierLikely},
		{"just below likely threshold is POSSIBLE", 0.649999, types.TierPossible},
		{"exactly at reporting floor is POSSIBLE", 0.40, types.TierPossible},
		{"just below reporting floor emits nothing", 0.399999, types.TierNone},
		{"zero score emits nothing", 0.0, types.TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.score, thresholds))
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	thresholds := config.Default().Thresholds
	for i := 0; i < 10; i++ {
		assert.Equal(t, Classify(0.75, thresholds), Classify(0.75, thresholds))
	}
}

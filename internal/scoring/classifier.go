package scoring

import (
	"github.com/kestrel-analytics/transition-engine/internal/config"
	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// Classify maps a composite score to its confidence tier. Pure function
// of score and thresholds; every band is inclusive on its lower bound.
// Below the reporting floor the result is TierNone and no detection is
// emitted.
func Classify(score float64, t config.Thresholds) types.Tier {
	switch {
	case score >= t.High:
		return types.TierHigh
	case score >= t.Likely:
		return types.TierLikely
	case score >= t.ReportingFloor:
		return types.TierPossible
	default:
		return types.TierNone
	}
}

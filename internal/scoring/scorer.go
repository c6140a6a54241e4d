package scoring

import (
	"github.com/kestrel-analytics/transition-engine/internal/config"
	"github.com/kestrel-analytics/transition-engine/internal/signals"
)

// Score fuses the six signal values into one composite in [0,1] as the
// weighted sum under the active preset. The clip guards floating-point
// drift; a valid preset already sums to 1.0.
func Score(values []signals.Value, weights config.Weights) float64 {
	total := 0.0
	for _, v := range values {
		total += weights.ByName(v.Name) * v.Score
	}
	return clip(total, 0, 1)
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

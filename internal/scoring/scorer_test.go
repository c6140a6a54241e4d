package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrel-analytics/transition-engine/internal/config"
	"github.com/kestrel-analytics/transition-engine/internal/signals"
)

func balancedWeights(t *testing.T) config.Weights {
	t.Helper()
	w, err := config.Default().ActiveWeights()
	assert.NoError(t, err)
	return w
}

func values(scores map[string]float64) []signals.Value {
	out := make([]signals.Value, 0, len(scores))
	for _, name := range signals.Names() {
		out = append(out, signals.Value{Name: name, Score: scores[name]})
	}
	return out
}

func TestScore(t *testing.T) {
	weights := balancedWeights(t)

	t.Run("all zero signals score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Score(values(nil), weights))
	})

	t.Run("all full signals score one", func(t *testing.T) {
		all := map[string]float64{}
		for _, name := range signals.Names() {
			all[name] = 1.0
		}
		assert.InDelta(t, 1.0, Score(values(all), weights), 1e-9)
	})

	t.Run("weighted sum of partial signals", func(t *testing.T) {
		got := Score(values(map[string]float64{
			"agency_continuity": 1.0, // 0.15
			"vendor_match":      0.99, // 0.25
		}), weights)
		assert.InDelta(t, 0.15+0.25*0.99, got, 1e-9)
	})

	t.Run("result stays in unit interval", func(t *testing.T) {
		// even an out-of-range upstream score cannot escape the clip
		vals := values(nil)
		for i := range vals {
			vals[i].Score = 1.5
		}
		got := Score(vals, weights)
		assert.LessOrEqual(t, got, 1.0)
		assert.GreaterOrEqual(t, got, 0.0)
	})

	t.Run("pinned regression for fuzzy degraded pair", func(t *testing.T) {
		// fuzzy match at similarity 0.70, same agency, contract 20 months
		// out, unknown competition, no patent or technology data
		got := Score(values(map[string]float64{
			"vendor_match":      0.6785714285714286,
			"agency_continuity": 1.0,
			"timing_proximity":  1.0 - 600.0/720.0,
			"competition_type":  0.5,
		}), weights)
		assert.InDelta(t, 0.4279761904761905, got, 1e-9)
	})
}

func TestScoreIsOrderIndependent(t *testing.T) {
	weights := balancedWeights(t)
	vals := values(map[string]float64{
		"agency_continuity": 0.5,
		"timing_proximity":  0.8,
		"vendor_match":      0.9,
	})
	reversed := make([]signals.Value, len(vals))
	for i, v := range vals {
		reversed[len(vals)-1-i] = v
	}
	assert.Equal(t, Score(vals, weights), Score(reversed, weights))
}

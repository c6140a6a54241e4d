package signals

import (
	"github.com/kestrel-analytics/transition-engine/internal/config"
	"github.com/kestrel-analytics/transition-engine/internal/resolver"
	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// Value is the outcome of one signal extractor for one award/contract
// pair. Defaulted distinguishes "computed and indicates no relationship"
// from "not computable due to missing data"; evidence review needs to
// tell these apart.
type Value struct {
	Name      string  `json:"name"`
	Raw       string  `json:"raw"`
	Score     float64 `json:"score"`
	Defaulted bool    `json:"defaulted"`
	Note      string  `json:"note,omitempty"`
}

// Context carries per-pair inputs beyond the award and contract records:
// the vendor resolution that produced the pairing, the vendor's patent
// portfolio, and the configured signal parameters.
type Context struct {
	Resolution  resolver.Resolution
	Patents     []types.Patent
	Timing      config.Timing
	Competition map[string]float64
	PatentCfg   config.Patent
}

// Extractor is a pure function over one candidate pair. Extractors never
// return errors; missing optional data resolves to a documented neutral
// default marked Defaulted.
type Extractor func(award *types.Award, contract *types.Contract, ctx *Context) Value

func defaulted(name, raw string, score float64, note string) Value {
	return Value{Name: name, Raw: raw, Score: score, Defaulted: true, Note: note}
}

func computed(name, raw string, score float64) Value {
	return Value{Name: name, Raw: raw, Score: clip01(score)}
}

func clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

package resolver

import (
	"fmt"
	"sort"

	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// Cascade confidences. Each exact step outranks the fuzzy band, so an
// exact-identifier match never scores below a name match.
const (
	confUEI  = 0.99
	confCAGE = 0.95
	confDUNS = 0.90

	fuzzyConfFloor = 0.65
	fuzzyConfCeil  = 0.85
)

// Resolution is one ranked vendor candidate for an award.
type Resolution struct {
	VendorID   string            `json:"vendor_id"`
	Method     types.MatchMethod `json:"method"`
	Confidence float64           `json:"confidence"`
	Similarity float64           `json:"similarity,omitempty"`
	Rationale  string            `json:"rationale"`
}

// Resolver maps an award's recipient identity to candidate contract
// vendors through a four-step cascade. Safe for concurrent use; the
// underlying index is read-only.
type Resolver struct {
	index  *ContractIndex
	sim    Similarity
	minSim float64
}

// New creates a resolver over a prebuilt index.
func New(index *ContractIndex, sim Similarity, minSimilarity float64) *Resolver {
	return &Resolver{index: index, sim: sim, minSim: minSimilarity}
}

// Resolve returns ranked vendor candidates for the award, possibly empty.
// Later cascade steps run only when earlier steps found nothing; an award
// with no identifiers at all falls straight to the fuzzy-name step.
func (r *Resolver) Resolve(award *types.Award) []Resolution {
	if !award.HasIdentifier() {
		return r.fuzzy(award)
	}
	if award.UEI != "" {
		if out := r.exact(r.index.byUEI[award.UEI], types.MatchUEI, confUEI,
			fmt.Sprintf("exact UEI match on %s", award.UEI)); len(out) > 0 {
			return out
		}
	}
	if award.CAGE != "" {
		if out := r.exact(r.index.byCAGE[award.CAGE], types.MatchCAGE, confCAGE,
			fmt.Sprintf("exact CAGE match on %s", award.CAGE)); len(out) > 0 {
			return out
		}
	}
	if award.DUNS != "" {
		if out := r.exact(r.index.byDUNS[award.DUNS], types.MatchDUNS, confDUNS,
			fmt.Sprintf("exact DUNS match on %s", award.DUNS)); len(out) > 0 {
			return out
		}
	}
	return r.fuzzy(award)
}

func (r *Resolver) exact(vendorIDs []string, method types.MatchMethod, confidence float64, rationale string) []Resolution {
	if len(vendorIDs) == 0 {
		return nil
	}
	out := make([]Resolution, 0, len(vendorIDs))
	for _, id := range vendorIDs {
		out = append(out, Resolution{
			VendorID:   id,
			Method:     method,
			Confidence: confidence,
			Rationale:  rationale,
		})
	}
	rank(out)
	return out
}

func (r *Resolver) fuzzy(award *types.Award) []Resolution {
	norm := NormalizeName(award.RecipientName)
	if norm == "" {
		return nil
	}

	var out []Resolution
	for _, v := range r.index.vendors {
		if v.NormalizedName == "" {
			continue
		}
		sim := r.sim.Compare(norm, v.NormalizedName)
		if sim < r.minSim {
			continue
		}
		out = append(out, Resolution{
			VendorID:   v.ID,
			Method:     types.MatchFuzzyName,
			Confidence: fuzzyConfidence(sim, r.minSim),
			Similarity: sim,
			Rationale:  fmt.Sprintf("name similarity %.2f between %q and %q", sim, norm, v.NormalizedName),
		})
	}
	rank(out)
	return out
}

// fuzzyConfidence scales similarity linearly into the fuzzy confidence
// band: minSim maps to the floor, perfect similarity to the ceiling.
func fuzzyConfidence(sim, minSim float64) float64 {
	if sim >= 1 {
		return fuzzyConfCeil
	}
	span := 1 - minSim
	if span <= 0 {
		return fuzzyConfFloor
	}
	return fuzzyConfFloor + (sim-minSim)/span*(fuzzyConfCeil-fuzzyConfFloor)
}

// rank orders candidates: exact methods before fuzzy, then higher
// confidence, then vendor ID for determinism.
func rank(out []Resolution) {
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Method.Exact() != b.Method.Exact() {
			return a.Method.Exact()
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.VendorID < b.VendorID
	})
}

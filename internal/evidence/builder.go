package evidence

import (
	"github.com/google/uuid"

	"github.com/kestrel-analytics/transition-engine/internal/config"
	"github.com/kestrel-analytics/transition-engine/internal/resolver"
	"github.com/kestrel-analytics/transition-engine/internal/signals"
	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// bundleNamespace scopes deterministic bundle IDs. Bundle refs are UUIDv5
// over (award, contract) so re-running on identical inputs reproduces
// identical references.
var bundleNamespace = uuid.MustParse("8e118d4b-90b2-44fa-a3a5-d3f9a25c1e70")

// Contribution is one signal's share of the composite score.
type Contribution struct {
	Name         string  `json:"name"`
	Raw          string  `json:"raw"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Defaulted    bool    `json:"defaulted"`
	Note         string  `json:"note,omitempty"`
}

// Bundle is the replayable justification for one detection: enough for a
// human to justify or refute it without re-executing the engine.
type Bundle struct {
	ID             string              `json:"id"`
	AwardID        string              `json:"award_id"`
	ContractID     string              `json:"contract_id"`
	Signals        []Contribution      `json:"signals"`
	Resolution     resolver.Resolution `json:"resolution"`
	CompositeScore float64             `json:"composite_score"`
	Tier           types.Tier          `json:"tier"`
	DefaultedCount int                 `json:"defaulted_count"`
}

// BundleID returns the deterministic evidence reference for a pair.
func BundleID(awardID, contractID string) string {
	return uuid.NewSHA1(bundleNamespace, []byte(awardID+"\x00"+contractID)).String()
}

// Build assembles the evidence bundle for one scored pair. Defaulted
// signals are carried with their flags and notes; the detection proceeds
// rather than aborting.
func Build(awardID, contractID string, values []signals.Value, weights config.Weights,
	res resolver.Resolution, score float64, tier types.Tier) *Bundle {

	contribs := make([]Contribution, len(values))
	defaultedCount := 0
	for i, v := range values {
		w := weights.ByName(v.Name)
		contribs[i] = Contribution{
			Name:         v.Name,
			Raw:          v.Raw,
			Score:        v.Score,
			Weight:       w,
			Contribution: w * v.Score,
			Defaulted:    v.Defaulted,
			Note:         v.Note,
		}
		if v.Defaulted {
			defaultedCount++
		}
	}

	return &Bundle{
		ID:             BundleID(awardID, contractID),
		AwardID:        awardID,
		ContractID:     contractID,
		Signals:        contribs,
		Resolution:     res,
		CompositeScore: score,
		Tier:           tier,
		DefaultedCount: defaultedCount,
	}
}

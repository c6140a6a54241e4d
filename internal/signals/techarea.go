package signals

import (
	"fmt"
	"strings"

	"github.com/kestrel-analytics/transition-engine/internal/types"
)

const relatedAreaCredit = 0.5

// TechAlignment scores agreement between the award's CET labels and the
// contract's. Identical label scores 1.0; a related sub-area (same
// top-level area) earns partial credit. Labels are opaque categorical
// values from the upstream classifier, never recomputed here.
func TechAlignment(award *types.Award, contract *types.Contract, _ *Context) Value {
	raw := fmt.Sprintf("award_labels=%v contract_label=%q", award.CETLabels, contract.CETLabel)

	contractLabel := normalizeCET(contract.CETLabel)
	if contractLabel == "" || len(award.CETLabels) == 0 {
		return defaulted(NameTechAlignment, raw, 0, "technology-area label missing")
	}

	best := 0.0
	for _, al := range award.CETLabels {
		awardLabel := normalizeCET(al)
		if awardLabel == "" {
			continue
		}
		switch {
		case awardLabel == contractLabel:
			return computed(NameTechAlignment, raw, 1.0)
		case cetParent(awardLabel) == cetParent(contractLabel):
			best = relatedAreaCredit
		}
	}
	return computed(NameTechAlignment, raw, best)
}

func normalizeCET(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// cetParent returns the top-level technology area of a hierarchical
// label, e.g. "ai/computer_vision" -> "ai".
func cetParent(s string) string {
	if i := strings.Index(s, "/"); i >= 0 {
		return s[:i]
	}
	return s
}

package signals

import (
	"fmt"
	"strings"

	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// neutralCompetition is the documented default when the competition
// category is missing or unmapped.
const neutralCompetition = 0.5

// CompetitionType scores the contract's competition category against the
// configured categorical scale: sole-source and limited competition score
// high, full-and-open scores low.
func CompetitionType(_ *types.Award, contract *types.Contract, ctx *Context) Value {
	category := normalizeCategory(contract.CompetitionType)
	raw := fmt.Sprintf("competition=%q", contract.CompetitionType)

	if category == "" {
		return defaulted(NameCompetitionType, raw, neutralCompetition, "competition category missing")
	}
	score, ok := ctx.Competition[category]
	if !ok {
		return defaulted(NameCompetitionType, raw, neutralCompetition,
			fmt.Sprintf("unmapped competition category %q", category))
	}
	return computed(NameCompetitionType, raw, score)
}

func normalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

package signals

import (
	"fmt"
	"strings"

	"github.com/kestrel-analytics/transition-engine/internal/types"
)

const relatedAgencyCredit = 0.5

// AgencyContinuity scores whether the contract's awarding agency is the
// same organization that funded the award. A shared parent department
// earns partial credit.
func AgencyContinuity(award *types.Award, contract *types.Contract, _ *Context) Value {
	funding := normalizeAgency(award.FundingAgency)
	awarding := normalizeAgency(contract.AwardingAgency)
	raw := fmt.Sprintf("funding=%q awarding=%q", award.FundingAgency, contract.AwardingAgency)

	if funding == "" || awarding == "" {
		return defaulted(NameAgencyContinuity, raw, 0, "agency missing on one side")
	}
	if funding == awarding {
		return computed(NameAgencyContinuity, raw, 1.0)
	}
	if agencyParent(funding) == agencyParent(awarding) {
		return computed(NameAgencyContinuity, raw, relatedAgencyCredit)
	}
	return computed(NameAgencyContinuity, raw, 0)
}

func normalizeAgency(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// agencyParent returns the top-level department of a hierarchical agency
// string, e.g. "dod/afrl" -> "dod".
func agencyParent(s string) string {
	if i := strings.IndexAny(s, "/:"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

package types

import "time"

// Award represents a funded research award whose downstream
// commercialization is being tracked. Inputs are immutable per run.
type Award struct {
	ID             string    `json:"id"`
	UEI            string    `json:"uei"`
	CAGE           string    `json:"cage"`
	DUNS           string    `json:"duns"`
	RecipientName  string    `json:"recipient_name"`
	FundingAgency  string    `json:"funding_agency"`
	CompletionDate time.Time `json:"completion_date"`
	CETLabels      []string  `json:"cet_labels"`
}

// HasIdentifier reports whether the award carries any exact identifier.
func (a *Award) HasIdentifier() bool {
	return a.UEI != "" || a.CAGE != "" || a.DUNS != ""
}

// Contract represents a federal procurement transaction that may have
// resulted from award-funded work.
type Contract struct {
	ID              string    `json:"id"`
	VendorID        string    `json:"vendor_id"`
	VendorUEI       string    `json:"vendor_uei"`
	VendorCAGE      string    `json:"vendor_cage"`
	VendorDUNS      string    `json:"vendor_duns"`
	VendorName      string    `json:"vendor_name"`
	AwardingAgency  string    `json:"awarding_agency"`
	ActionDate      time.Time `json:"action_date"`
	CompetitionType string    `json:"competition_type"`
	Value           float64   `json:"value"`
	CETLabel        string    `json:"cet_label"`
}

// Patent is an optional input linking a vendor to a technology area by
// filing date. Absence of patent data degrades gracefully.
type Patent struct {
	AssigneeName string    `json:"assignee_name"`
	FilingDate   time.Time `json:"filing_date"`
	CETLabel     string    `json:"cet_label"`
}

// MatchMethod identifies which step of the resolution cascade produced a
// vendor candidate.
type MatchMethod string

const (
	MatchUEI       MatchMethod = "uei_exact"
	MatchCAGE      MatchMethod = "cage_exact"
	MatchDUNS      MatchMethod = "duns_exact"
	MatchFuzzyName MatchMethod = "fuzzy_name"
)

// Exact reports whether the method is an exact-identifier match.
func (m MatchMethod) Exact() bool { return m != MatchFuzzyName }

// Tier is the discrete confidence bucket derived from the composite score.
type Tier string

const (
	TierHigh     Tier = "HIGH"
	TierLikely   Tier = "LIKELY"
	TierPossible Tier = "POSSIBLE"
	// TierNone means the score fell below the reporting floor and no
	// detection is emitted.
	TierNone Tier = ""
)

// Detection is one probable award-to-contract transition. Keyed uniquely
// by (AwardID, ContractID); identical inputs and configuration must
// reproduce an identical Detection.
type Detection struct {
	AwardID         string      `json:"award_id"`
	ContractID      string      `json:"contract_id"`
	VendorID        string      `json:"vendor_id"`
	MatchMethod     MatchMethod `json:"match_method"`
	MatchConfidence float64     `json:"match_confidence"`
	CompositeScore  float64     `json:"composite_score"`
	Tier            Tier        `json:"tier"`
	EvidenceRef     string      `json:"evidence_ref"`
}

package signals

import "github.com/kestrel-analytics/transition-engine/internal/types"

// Signal names, in evaluation order. The order is fixed so evidence
// bundles and persisted detections are byte-stable across runs.
const (
	NameAgencyContinuity = "agency_continuity"
	NameTimingProximity  = "timing_proximity"
	NameCompetitionType  = "competition_type"
	NamePatentSignal     = "patent_signal"
	NameTechAlignment    = "tech_alignment"
	NameVendorMatch      = "vendor_match"
)

// registry is the fixed table of the six extractors. Not a dispatch
// hierarchy: each entry is an independently testable pure function.
var registry = []struct {
	Name string
	Fn   Extractor
}{
	{NameAgencyContinuity, AgencyContinuity},
	{NameTimingProximity, TimingProximity},
	{NameCompetitionType, CompetitionType},
	{NamePatentSignal, PatentSignal},
	{NameTechAlignment, TechAlignment},
	{NameVendorMatch, VendorMatch},
}

// Names returns the signal names in evaluation order.
func Names() []string {
	out := make([]string, len(registry))
	for i, e := range registry {
		out[i] = e.Name
	}
	return out
}

// ExtractAll runs all six extractors over one candidate pair, returning
// values in registry order.
func ExtractAll(award *types.Award, contract *types.Contract, ctx *Context) []Value {
	out := make([]Value, len(registry))
	for i, e := range registry {
		out[i] = e.Fn(award, contract, ctx)
	}
	return out
}

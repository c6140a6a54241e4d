package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-analytics/transition-engine/internal/config"
	"github.com/kestrel-analytics/transition-engine/internal/monitoring"
	"github.com/kestrel-analytics/transition-engine/internal/types"
)

type fixedSim float64

func (f fixedSim) Compare(a, b string) float64 { return float64(f) }

var completion = time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	eng, err := New(config.Default(), monitoring.NewLogger(), opts...)
	require.NoError(t, err)
	return eng
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	w := cfg.Presets["balanced"]
	w.VendorMatch += 0.05
	cfg.Presets["balanced"] = w

	_, err := New(cfg, monitoring.NewLogger())
	require.Error(t, err)
}

func TestRunScenarioExactMatchHigh(t *testing.T) {
	// exact-identifier vendor match, same agency, contract five months
	// after completion, sole source, matching technology label
	awards := []types.Award{{
		ID:             "A1",
		UEI:            "UEI-1",
		RecipientName:  "Acme Robotics Inc",
		FundingAgency:  "DOD",
		CompletionDate: completion,
		CETLabels:      []string{"ai/machine_learning"},
	}}
	contracts := []types.Contract{{
		ID:              "C1",
		VendorID:        "V1",
		VendorUEI:       "UEI-1",
		VendorName:      "Acme Robotics Inc",
		AwardingAgency:  "DOD",
		ActionDate:      completion.AddDate(0, 0, 150),
		CompetitionType: "sole_source",
		CETLabel:        "ai/machine_learning",
	}}

	result, err := newTestEngine(t).Run(context.Background(), awards, contracts, nil)
	require.NoError(t, err)
	require.Len(t, result.Detections, 1)

	d := result.Detections[0]
	assert.Equal(t, "A1", d.AwardID)
	assert.Equal(t, "C1", d.ContractID)
	assert.Equal(t, types.MatchUEI, d.MatchMethod)
	assert.Equal(t, 0.99, d.MatchConfidence)
	assert.GreaterOrEqual(t, d.CompositeScore, 0.85)
	assert.Equal(t, types.TierHigh, d.Tier)

	require.Len(t, result.Bundles, 1)
	assert.Equal(t, d.EvidenceRef, result.Bundles[0].ID)
	assert.Equal(t, int64(1), result.Summary.DetectionsHigh)
}

func TestRunScenarioUnresolvableAwardEmitsNothing(t *testing.T) {
	// no identifiers, unrelated vendor and agency, contract three years out
	awards := []types.Award{{
		ID:             "A1",
		RecipientName:  "Quantum Widgets",
		FundingAgency:  "DOE",
		CompletionDate: completion,
	}}
	contracts := []types.Contract{{
		ID:              "C1",
		VendorID:        "V1",
		VendorName:      "Totally Different Industrial Holdings",
		AwardingAgency:  "NASA",
		ActionDate:      completion.AddDate(3, 0, 0),
		CompetitionType: "full_and_open",
	}}

	result, err := newTestEngine(t).Run(context.Background(), awards, contracts, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Detections)
	assert.Equal(t, int64(1), result.Summary.AwardsUnresolved)
	assert.Equal(t, int64(0), result.Summary.TotalDetections())
}

func TestRunScenarioFuzzyDegradedPossible(t *testing.T) {
	// fuzzy-name match only at similarity 0.70, same agency, contract 20
	// months out, unmapped competition, no patent or technology data
	awards := []types.Award{{
		ID:             "A1",
		RecipientName:  "Acme Robotic",
		FundingAgency:  "DOD",
		CompletionDate: completion,
	}}
	contracts := []types.Contract{{
		ID:              "C1",
		VendorID:        "V1",
		VendorName:      "Acme Robotics Inc",
		AwardingAgency:  "DOD",
		ActionDate:      completion.AddDate(0, 0, 600),
		CompetitionType: "other_than_full_and_open",
	}}

	eng := newTestEngine(t, WithSimilarity(fixedSim(0.70)))
	result, err := eng.Run(context.Background(), awards, contracts, nil)
	require.NoError(t, err)
	require.Len(t, result.Detections, 1)

	d := result.Detections[0]
	assert.Equal(t, types.MatchFuzzyName, d.MatchMethod)
	assert.InDelta(t, 0.6785714285714286, d.MatchConfidence, 1e-9)
	// pinned against the balanced preset to catch configuration drift
	assert.InDelta(t, 0.4279761904761905, d.CompositeScore, 1e-9)
	assert.Equal(t, types.TierPossible, d.Tier)
}

func TestRunIdempotent(t *testing.T) {
	awards := []types.Award{
		{ID: "A1", UEI: "UEI-1", RecipientName: "Acme Robotics", FundingAgency: "DOD",
			CompletionDate: completion, CETLabels: []string{"ai/machine_learning"}},
		{ID: "A2", CAGE: "CAGE-2", RecipientName: "Beta Dynamics", FundingAgency: "DOE",
			CompletionDate: completion.AddDate(0, 3, 0)},
		{ID: "A3", RecipientName: "Gamma Systems", FundingAgency: "NASA",
			CompletionDate: completion.AddDate(0, 6, 0)},
	}
	contracts := []types.Contract{
		{ID: "C1", VendorID: "V1", VendorUEI: "UEI-1", VendorName: "Acme Robotics Inc",
			AwardingAgency: "DOD", ActionDate: completion.AddDate(0, 2, 0),
			CompetitionType: "sole_source", CETLabel: "ai/machine_learning"},
		{ID: "C2", VendorID: "V1", VendorUEI: "UEI-1", VendorName: "Acme Robotics Inc",
			AwardingAgency: "DOD", ActionDate: completion.AddDate(0, 18, 0),
			CompetitionType: "limited"},
		{ID: "C3", VendorID: "V2", VendorCAGE: "CAGE-2", VendorName: "Beta Dynamics LLC",
			AwardingAgency: "DOE", ActionDate: completion.AddDate(0, 8, 0),
			CompetitionType: "set_aside"},
		{ID: "C4", VendorID: "V3", VendorName: "Gamma Systems Corp",
			AwardingAgency: "NASA", ActionDate: completion.AddDate(0, 9, 0),
			CompetitionType: "full_and_open"},
	}
	patents := []types.Patent{
		{AssigneeName: "Acme Robotics Inc", FilingDate: completion.AddDate(1, 0, 0), CETLabel: "ai/machine_learning"},
	}

	eng := newTestEngine(t)
	first, err := eng.Run(context.Background(), awards, contracts, patents)
	require.NoError(t, err)
	second, err := eng.Run(context.Background(), awards, contracts, patents)
	require.NoError(t, err)

	// run IDs differ but every detection and bundle is reproduced exactly
	assert.Equal(t, first.Detections, second.Detections)
	require.Equal(t, len(first.Bundles), len(second.Bundles))
	for i := range first.Bundles {
		assert.Equal(t, first.Bundles[i], second.Bundles[i])
	}
}

func TestRunOutputOrderStableAcrossWorkerCounts(t *testing.T) {
	var awards []types.Award
	var contracts []types.Contract
	for i := 0; i < 20; i++ {
		id := string(rune('A' + i))
		awards = append(awards, types.Award{
			ID: "award-" + id, UEI: "UEI-" + id, RecipientName: "Vendor " + id,
			FundingAgency: "DOD", CompletionDate: completion,
			CETLabels: []string{"ai/machine_learning"},
		})
		contracts = append(contracts, types.Contract{
			ID: "contract-" + id, VendorID: "vendor-" + id, VendorUEI: "UEI-" + id,
			VendorName: "Vendor " + id, AwardingAgency: "DOD",
			ActionDate:      completion.AddDate(0, 3, 0),
			CompetitionType: "sole_source", CETLabel: "ai/machine_learning",
		})
	}

	single := config.Default()
	single.Engine.Workers = 1
	engSingle, err := New(single, monitoring.NewLogger())
	require.NoError(t, err)

	many := config.Default()
	many.Engine.Workers = 8
	engMany, err := New(many, monitoring.NewLogger())
	require.NoError(t, err)

	a, err := engSingle.Run(context.Background(), awards, contracts, nil)
	require.NoError(t, err)
	b, err := engMany.Run(context.Background(), awards, contracts, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Detections, b.Detections)
}

func TestRunSkipsMalformedRecords(t *testing.T) {
	awards := []types.Award{
		{ID: "", RecipientName: "No ID", CompletionDate: completion},
		{ID: "A2", RecipientName: "No Completion Date"},
		{ID: "A3", UEI: "UEI-1", RecipientName: "Acme Robotics",
			FundingAgency: "DOD", CompletionDate: completion},
	}
	contracts := []types.Contract{
		{ID: "bad"}, // no vendor identity, no date
		{ID: "C1", VendorID: "V1", VendorUEI: "UEI-1", VendorName: "Acme Robotics Inc",
			AwardingAgency: "DOD", ActionDate: completion.AddDate(0, 2, 0),
			CompetitionType: "sole_source"},
	}

	result, err := newTestEngine(t).Run(context.Background(), awards, contracts, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Summary.SkippedAwards)
	assert.Equal(t, int64(1), result.Summary.SkippedContracts)
	assert.Equal(t, int64(1), result.Summary.AwardsProcessed)
	assert.Equal(t, int64(1), result.Summary.AwardsResolved)
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	awards := make([]types.Award, 100)
	for i := range awards {
		awards[i] = types.Award{ID: "A", UEI: "U", CompletionDate: completion}
	}

	_, err := newTestEngine(t).Run(ctx, awards, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunDefaultedSignalsCounted(t *testing.T) {
	awards := []types.Award{{
		ID: "A1", UEI: "UEI-1", RecipientName: "Acme Robotics",
		FundingAgency: "DOD", CompletionDate: completion,
		CETLabels: []string{"ai/machine_learning"},
	}}
	// no patents on file and no contract CET label: two defaulted signals
	contracts := []types.Contract{{
		ID: "C1", VendorID: "V1", VendorUEI: "UEI-1", VendorName: "Acme Robotics Inc",
		AwardingAgency: "DOD", ActionDate: completion.AddDate(0, 2, 0),
		CompetitionType: "sole_source",
	}}

	result, err := newTestEngine(t).Run(context.Background(), awards, contracts, nil)
	require.NoError(t, err)
	require.Len(t, result.Detections, 1)
	assert.Equal(t, int64(2), result.Summary.DefaultedSignals)
}

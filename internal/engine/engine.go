package engine

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kestrel-analytics/transition-engine/internal/config"
	"github.com/kestrel-analytics/transition-engine/internal/evidence"
	"github.com/kestrel-analytics/transition-engine/internal/monitoring"
	"github.com/kestrel-analytics/transition-engine/internal/resolver"
	"github.com/kestrel-analytics/transition-engine/internal/scoring"
	"github.com/kestrel-analytics/transition-engine/internal/signals"
	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// Result holds everything a completed run produced: the detection
// dataset, the evidence dataset keyed to it, and the run summary.
type Result struct {
	RunID      string
	Detections []types.Detection
	Bundles    []*evidence.Bundle
	Summary    Summary
}

// Engine drives vendor resolution, signal extraction, scoring and
// classification over the full award population.
type Engine struct {
	cfg     *config.Config
	weights config.Weights
	sim     resolver.Similarity
	logger  *monitoring.Logger
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithSimilarity swaps the fuzzy name similarity function. The default is
// the hybrid token/Jaro-Winkler blend.
func WithSimilarity(sim resolver.Similarity) Option {
	return func(e *Engine) { e.sim = sim }
}

// New creates an engine from validated configuration. Configuration
// errors are fatal here, before any processing begins.
func New(cfg *config.Config, logger *monitoring.Logger, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	weights, err := cfg.ActiveWeights()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:     cfg,
		weights: weights,
		sim:     resolver.NewHybridSimilarity(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run processes every award against the contract corpus and returns all
// detections clearing the reporting floor. Identical inputs and
// configuration produce an identical result.
func (e *Engine) Run(ctx context.Context, awards []types.Award, contracts []types.Contract, patents []types.Patent) (*Result, error) {
	runID := uuid.New().String()
	started := time.Now()
	metrics := monitoring.NewRunMetrics()
	e.logger.RunStarted(runID, len(awards), len(contracts), len(patents))

	// one-time blocking index build before fan-out
	indexStart := time.Now()
	index := resolver.BuildIndex(contracts)
	patentsByAssignee := indexPatents(patents)
	metrics.AddSkippedContracts(int64(index.Skipped()))
	e.logger.IndexBuilt(index.ContractCount(), index.VendorCount(), time.Since(indexStart))

	res := resolver.New(index, e.sim, e.cfg.Resolver.MinSimilarity)

	workers := e.cfg.Engine.Workers
	if workers > len(awards) && len(awards) > 0 {
		workers = len(awards)
	}
	if workers < 1 {
		workers = 1
	}

	// each worker holds read-only access to the shared index and writes
	// only its own partition's output; results merge at a single barrier
	partitions := make([]partitionResult, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			part := &partitions[w]
			for i := w; i < len(awards); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				e.processAward(&awards[i], res, index, patentsByAssignee, metrics, part)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := merge(runID, partitions)
	result.Summary = newSummary(runID, e.cfg.Preset, metrics.Snapshot(), time.Since(started))
	e.logger.RunCompleted(runID, len(result.Detections), time.Since(started))
	return result, nil
}

type partitionResult struct {
	detections []types.Detection
	bundles    []*evidence.Bundle
}

// processAward resolves one award and scores every candidate contract.
// A malformed award is skipped and counted, never aborting the worker.
func (e *Engine) processAward(award *types.Award, res *resolver.Resolver, index *resolver.ContractIndex,
	patentsByAssignee map[string][]types.Patent, metrics *monitoring.RunMetrics, part *partitionResult) {

	if award.ID == "" || award.CompletionDate.IsZero() {
		metrics.IncSkippedAwards()
		e.logger.RecordSkipped("award", award.ID, "missing id or completion date")
		return
	}
	metrics.IncAwardsProcessed()

	// resolved once per award, reused across all its candidate contracts
	candidates := res.Resolve(award)
	if len(candidates) == 0 {
		metrics.IncAwardsUnresolved()
		return
	}
	metrics.IncAwardsResolved()

	for _, cand := range candidates {
		vendorPatents := patentsByAssignee[index.VendorName(cand.VendorID)]
		sctx := &signals.Context{
			Resolution:  cand,
			Patents:     vendorPatents,
			Timing:      e.cfg.Timing,
			Competition: e.cfg.Competition,
			PatentCfg:   e.cfg.Patent,
		}

		for _, contract := range index.Contracts(cand.VendorID) {
			values := signals.ExtractAll(award, contract, sctx)
			score := scoring.Score(values, e.weights)
			metrics.IncPairsScored()

			tier := scoring.Classify(score, e.cfg.Thresholds)
			if tier == types.TierNone {
				continue
			}

			bundle := evidence.Build(award.ID, contract.ID, values, e.weights, cand, score, tier)
			metrics.AddDefaultedSignals(int64(bundle.DefaultedCount))
			metrics.IncDetection(string(tier))

			part.detections = append(part.detections, types.Detection{
				AwardID:         award.ID,
				ContractID:      contract.ID,
				VendorID:        cand.VendorID,
				MatchMethod:     cand.Method,
				MatchConfidence: cand.Confidence,
				CompositeScore:  score,
				Tier:            tier,
				EvidenceRef:     bundle.ID,
			})
			part.bundles = append(part.bundles, bundle)
		}
	}
}

// merge joins worker partitions behind the barrier and fixes a stable
// output order regardless of worker interleaving.
func merge(runID string, partitions []partitionResult) *Result {
	result := &Result{RunID: runID}
	for _, p := range partitions {
		result.Detections = append(result.Detections, p.detections...)
		result.Bundles = append(result.Bundles, p.bundles...)
	}

	sort.Slice(result.Detections, func(i, j int) bool {
		a, b := result.Detections[i], result.Detections[j]
		if a.AwardID != b.AwardID {
			return a.AwardID < b.AwardID
		}
		return a.ContractID < b.ContractID
	})
	sort.Slice(result.Bundles, func(i, j int) bool {
		a, b := result.Bundles[i], result.Bundles[j]
		if a.AwardID != b.AwardID {
			return a.AwardID < b.AwardID
		}
		return a.ContractID < b.ContractID
	})
	return result
}

// indexPatents groups patents by normalized assignee name. Malformed
// patent rows are dropped; patent data is optional throughout.
func indexPatents(patents []types.Patent) map[string][]types.Patent {
	if len(patents) == 0 {
		return nil
	}
	out := make(map[string][]types.Patent)
	for _, p := range patents {
		name := resolver.NormalizeName(p.AssigneeName)
		if name == "" || p.FilingDate.IsZero() {
			continue
		}
		out[name] = append(out[name], p)
	}
	return out
}

package store

import (
	"database/sql"
	"encoding/json"
	"time"

	apperrors "github.com/kestrel-analytics/transition-engine/internal/errors"
	"github.com/kestrel-analytics/transition-engine/internal/engine"
	"github.com/kestrel-analytics/transition-engine/internal/evidence"
	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// Repository persists and reads back run output: the detection dataset
// for graph persistence and analytics, the evidence dataset for human
// review.
type Repository struct {
	db *DB
}

// NewRepository creates a repository over an open database.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveRun writes a completed run transactionally. A partially written
// run is never visible.
func (r *Repository) SaveRun(result *engine.Result) error {
	tx, err := r.db.Begin()
	if err != nil {
		return apperrors.NewStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return apperrors.NewStorageError("failed to encode run summary", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO runs (id, preset, summary_json, created_at)
		VALUES (?, ?, ?, ?)
	`, result.RunID, result.Summary.Preset, string(summaryJSON), time.Now().UTC()); err != nil {
		return apperrors.NewStorageError("failed to insert run", err)
	}

	detStmt, err := tx.Prepare(`
		INSERT INTO detections (run_id, award_id, contract_id, vendor_id, match_method,
			match_confidence, composite_score, tier, evidence_ref)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return apperrors.NewStorageError("failed to prepare detection insert", err)
	}
	defer detStmt.Close()

	for _, d := range result.Detections {
		if _, err := detStmt.Exec(result.RunID, d.AwardID, d.ContractID, d.VendorID,
			string(d.MatchMethod), d.MatchConfidence, d.CompositeScore, string(d.Tier), d.EvidenceRef); err != nil {
			return apperrors.NewStorageError("failed to insert detection", err)
		}
	}

	evStmt, err := tx.Prepare(`
		INSERT INTO evidence (id, run_id, award_id, contract_id, bundle_json)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return apperrors.NewStorageError("failed to prepare evidence insert", err)
	}
	defer evStmt.Close()

	for _, b := range result.Bundles {
		bundleJSON, err := json.Marshal(b)
		if err != nil {
			return apperrors.NewStorageError("failed to encode evidence bundle", err)
		}
		if _, err := evStmt.Exec(b.ID, result.RunID, b.AwardID, b.ContractID, string(bundleJSON)); err != nil {
			return apperrors.NewStorageError("failed to insert evidence", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("failed to commit run", err)
	}
	return nil
}

// LatestRunID returns the most recently saved run, or "" when none exist.
func (r *Repository) LatestRunID() (string, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewStorageError("failed to query latest run", err)
	}
	return id, nil
}

// GetSummary returns the stored summary for a run.
func (r *Repository) GetSummary(runID string) (*engine.Summary, error) {
	var summaryJSON string
	err := r.db.QueryRow(`SELECT summary_json FROM runs WHERE id = ?`, runID).Scan(&summaryJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query run summary", err)
	}

	var summary engine.Summary
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return nil, apperrors.NewStorageError("failed to decode run summary", err)
	}
	return &summary, nil
}

// ListDetections returns a run's detections, optionally filtered by tier,
// ordered by (award_id, contract_id).
func (r *Repository) ListDetections(runID string, tier types.Tier) ([]types.Detection, error) {
	query := `
		SELECT award_id, contract_id, vendor_id, match_method, match_confidence,
			composite_score, tier, evidence_ref
		FROM detections
		WHERE run_id = ?`
	args := []interface{}{runID}
	if tier != types.TierNone {
		query += ` AND tier = ?`
		args = append(args, string(tier))
	}
	query += ` ORDER BY award_id, contract_id`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query detections", err)
	}
	defer rows.Close()

	var out []types.Detection
	for rows.Next() {
		var d types.Detection
		var method, detTier string
		if err := rows.Scan(&d.AwardID, &d.ContractID, &d.VendorID, &method,
			&d.MatchConfidence, &d.CompositeScore, &detTier, &d.EvidenceRef); err != nil {
			return nil, apperrors.NewStorageError("failed to scan detection", err)
		}
		d.MatchMethod = types.MatchMethod(method)
		d.Tier = types.Tier(detTier)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate detections", err)
	}
	return out, nil
}

// GetEvidence returns the evidence bundle for a reference, or nil when
// not found.
func (r *Repository) GetEvidence(runID, evidenceRef string) (*evidence.Bundle, error) {
	var bundleJSON string
	err := r.db.QueryRow(`
		SELECT bundle_json FROM evidence WHERE run_id = ? AND id = ?
	`, runID, evidenceRef).Scan(&bundleJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query evidence", err)
	}

	var bundle evidence.Bundle
	if err := json.Unmarshal([]byte(bundleJSON), &bundle); err != nil {
		return nil, apperrors.NewStorageError("failed to decode evidence bundle", err)
	}
	return &bundle, nil
}

package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection holding persisted run output.
type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the run-output database under dataDir.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "transition_engine.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := &DB{DB: db}
	if err := wrapped.createTables(); err != nil {
		return nil, err
	}
	return wrapped, nil
}

func (db *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		preset TEXT NOT NULL,
		summary_json TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS detections (
		run_id TEXT NOT NULL,
		award_id TEXT NOT NULL,
		contract_id TEXT NOT NULL,
		vendor_id TEXT NOT NULL,
		match_method TEXT NOT NULL,
		match_confidence REAL NOT NULL,
		composite_score REAL NOT NULL,
		tier TEXT NOT NULL,
		evidence_ref TEXT NOT NULL,
		PRIMARY KEY (run_id, award_id, contract_id),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_detections_tier ON detections(run_id, tier);

	CREATE TABLE IF NOT EXISTS evidence (
		id TEXT NOT NULL,
		run_id TEXT NOT NULL,
		award_id TEXT NOT NULL,
		contract_id TEXT NOT NULL,
		bundle_json TEXT NOT NULL,
		PRIMARY KEY (run_id, id),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

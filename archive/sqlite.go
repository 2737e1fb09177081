package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/hupe1980/memtrail/core"
)

// SQLiteArchive implements core.ChainArchiver using SQLite. Rows are
// append-only: the archive exposes no update or delete path, so the stored
// history can only grow, mirroring the in-memory chain invariant. One archive
// is shared by all subjects, and distinct subjects are processed in parallel,
// so Append must be safe for concurrent use.
type SQLiteArchive struct {
	db *sql.DB
}

var _ core.ChainArchiver = (*SQLiteArchive)(nil)

// NewSQLiteArchive opens or creates an archive database at the given path.
func NewSQLiteArchive(dbPath string) (*SQLiteArchive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	a := &SQLiteArchive{db: db}

	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return a, nil
}

// newRowID generates a sortable row id. ulid.Make locks its entropy source,
// so concurrent appends never contend on shared unsynchronized state.
func (a *SQLiteArchive) newRowID() string {
	return ulid.Make().String()
}

func (a *SQLiteArchive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS provenance_records (
		id             TEXT PRIMARY KEY,
		subject_id     TEXT NOT NULL,
		entity         TEXT NOT NULL,
		record_id      TEXT NOT NULL,
		ts             TEXT NOT NULL,
		source_turn_id TEXT NOT NULL,
		snippet        TEXT NOT NULL,
		reasoning      TEXT NOT NULL,
		status         TEXT NOT NULL,
		prev_hash      TEXT NOT NULL,
		record_hash    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_prov_subject_entity ON provenance_records(subject_id, entity);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_prov_record ON provenance_records(subject_id, entity, record_id);
	`
	_, err := a.db.Exec(schema)
	return err
}

// Append persists one committed record. The stored record hash is computed at
// write time so later audits can detect row tampering.
func (a *SQLiteArchive) Append(ctx context.Context, subjectID, entityName string, rec core.ProvenanceRecord) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO provenance_records
		 (id, subject_id, entity, record_id, ts, source_turn_id, snippet, reasoning, status, prev_hash, record_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.newRowID(), subjectID, core.Key(entityName), rec.RecordID,
		rec.Timestamp.UTC().Format(time.RFC3339Nano), rec.SourceTurnID,
		rec.SourceTextSnippet, rec.Reasoning, string(rec.Status), rec.PrevHash, rec.Hash())
	if err != nil {
		return fmt.Errorf("insert provenance record: %w", err)
	}
	return nil
}

// ReadChain returns the archived records for one entity in append order.
func (a *SQLiteArchive) ReadChain(ctx context.Context, subjectID, entityName string) ([]core.ProvenanceRecord, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT record_id, ts, source_turn_id, snippet, reasoning, status, prev_hash
		 FROM provenance_records
		 WHERE subject_id = ? AND entity = ?
		 ORDER BY id`, subjectID, core.Key(entityName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chain []core.ProvenanceRecord
	for rows.Next() {
		var rec core.ProvenanceRecord
		var ts, status string
		if err := rows.Scan(&rec.RecordID, &ts, &rec.SourceTurnID, &rec.SourceTextSnippet,
			&rec.Reasoning, &status, &rec.PrevHash); err != nil {
			return nil, err
		}
		rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp of %s: %w", rec.RecordID, err)
		}
		rec.Status = core.Status(status)
		chain = append(chain, rec)
	}
	return chain, rows.Err()
}

// VerifyArchived audits one archived chain: the sentinel on the first record,
// every hash link, and each row's stored record hash against a recomputation
// from the row's content. Returns a wrapped core.ErrChainIntegrity on the
// first mismatch.
func (a *SQLiteArchive) VerifyArchived(ctx context.Context, subjectID, entityName string) error {
	rows, err := a.db.QueryContext(ctx,
		`SELECT record_id, ts, source_turn_id, snippet, reasoning, status, prev_hash, record_hash
		 FROM provenance_records
		 WHERE subject_id = ? AND entity = ?
		 ORDER BY id`, subjectID, core.Key(entityName))
	if err != nil {
		return err
	}
	defer rows.Close()

	var prevHash string
	count := 0
	for rows.Next() {
		var rec core.ProvenanceRecord
		var ts, status, storedHash string
		if err := rows.Scan(&rec.RecordID, &ts, &rec.SourceTurnID, &rec.SourceTextSnippet,
			&rec.Reasoning, &status, &rec.PrevHash, &storedHash); err != nil {
			return err
		}
		rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return fmt.Errorf("parse timestamp of %s: %w", rec.RecordID, err)
		}
		rec.Status = core.Status(status)

		if count == 0 {
			if !rec.IsInitial() {
				return fmt.Errorf("archived chain %s/%s: first record %s lacks the sentinel: %w",
					subjectID, core.Key(entityName), rec.RecordID, core.ErrChainIntegrity)
			}
		} else if rec.PrevHash != prevHash {
			return fmt.Errorf("archived chain %s/%s: record %s stores previous hash %q, expected %q: %w",
				subjectID, core.Key(entityName), rec.RecordID, rec.PrevHash, prevHash, core.ErrChainIntegrity)
		}
		if recomputed := rec.Hash(); recomputed != storedHash {
			return fmt.Errorf("archived chain %s/%s: record %s content hash %q diverges from stored %q: %w",
				subjectID, core.Key(entityName), rec.RecordID, recomputed, storedHash, core.ErrChainIntegrity)
		}
		prevHash = storedHash
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("archived chain %s/%s: %w", subjectID, core.Key(entityName), core.ErrUnknownEntity)
	}
	return nil
}

// Entities lists the archived entity names for a subject.
func (a *SQLiteArchive) Entities(ctx context.Context, subjectID string) ([]string, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT DISTINCT entity FROM provenance_records WHERE subject_id = ? ORDER BY entity`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the archive.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

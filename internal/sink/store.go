package sink

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

// StoreSink persists each snapshot as one SQLite row, so long-running
// deployments keep their aggregate history on disk instead of in
// ever-growing in-memory arrays.
type StoreSink struct {
	db    *sql.DB
	runID string
}

func NewStoreSink(dbPath, runID string) (*StoreSink, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sink: cannot open snapshot store: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		variant TEXT,
		seq INTEGER,
		payload TEXT,
		created_at DATETIME
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sink: cannot create snapshot table: %w", err)
	}

	return &StoreSink{db: db, runID: runID}, nil
}

func (s *StoreSink) Accept(snapshot reduce.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %v", reduce.ErrSinkFailure, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots (run_id, variant, seq, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.runID, string(snapshot.Variant), snapshot.Seq, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", reduce.ErrSinkFailure, err)
	}
	return nil
}

// Recent returns up to limit stored snapshots, newest first.
func (s *StoreSink) Recent(limit int) ([]reduce.Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT payload FROM snapshots WHERE run_id = ? ORDER BY id DESC LIMIT ?`,
		s.runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reduce.Snapshot
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var snap reduce.Snapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *StoreSink) Close() error {
	return s.db.Close()
}

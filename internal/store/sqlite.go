package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/cityscale/healthatlas/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id             TEXT PRIMARY KEY,
	city           TEXT NOT NULL,
	facility_count INTEGER NOT NULL,
	facilities     TEXT NOT NULL,
	collected_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_snapshots_city ON snapshots(city, collected_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, city string, facilities []model.Facility) (*Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	payload, err := json.Marshal(facilities)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal facilities")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, city, facility_count, facilities, collected_at) VALUES (?, ?, ?, ?, ?)`,
		id, city, len(facilities), string(payload), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert snapshot")
	}

	return &Snapshot{
		ID:            id,
		City:          city,
		FacilityCount: len(facilities),
		CollectedAt:   now,
	}, nil
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context, city string) (*Snapshot, []model.Facility, error) {
	var snap Snapshot
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, city, facility_count, facilities, collected_at
		 FROM snapshots WHERE city = ? ORDER BY collected_at DESC LIMIT 1`,
		city,
	).Scan(&snap.ID, &snap.City, &snap.FacilityCount, &payload, &snap.CollectedAt)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, eris.Wrap(err, "sqlite: latest snapshot")
	}

	var facilities []model.Facility
	if err := json.Unmarshal([]byte(payload), &facilities); err != nil {
		return nil, nil, eris.Wrap(err, "sqlite: unmarshal facilities")
	}
	return &snap, facilities, nil
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context, city string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, city, facility_count, collected_at
		 FROM snapshots WHERE city = ? ORDER BY collected_at DESC LIMIT ?`,
		city, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.City, &snap.FacilityCount, &snap.CollectedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot")
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate snapshots")
	}
	return snaps, nil
}

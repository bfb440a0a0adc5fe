// Package store persists facility collection snapshots so analysis runs
// can work offline from the most recent collection.
package store

import (
	"context"
	"time"

	"github.com/cityscale/healthatlas/internal/model"
)

// Snapshot describes one persisted collection run.
type Snapshot struct {
	ID            string    `json:"id"`
	City          string    `json:"city"`
	FacilityCount int       `json:"facility_count"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Store is the persistence interface for collection snapshots.
type Store interface {
	// SaveSnapshot persists a collected facility set for a city.
	SaveSnapshot(ctx context.Context, city string, facilities []model.Facility) (*Snapshot, error)

	// LatestSnapshot returns the most recent snapshot for a city and
	// its facilities. Returns nil, nil, nil when no snapshot exists.
	LatestSnapshot(ctx context.Context, city string) (*Snapshot, []model.Facility, error)

	// ListSnapshots returns snapshots for a city, newest first.
	ListSnapshots(ctx context.Context, city string, limit int) ([]Snapshot, error)

	// Lifecycle.
	Migrate(ctx context.Context) error
	Close() error
}

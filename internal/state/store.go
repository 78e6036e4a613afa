// Package state persists worldline snapshots in SQLite.
//
// A snapshot is a full copy of the worldline at export time. The events
// table always holds the latest snapshot; the snapshots table keeps one row
// per export.
package state

import (
	"context"
	"time"

	"github.com/leapstack-labs/worldline/pkg/worldline"
)

// Snapshot describes one export of a worldline into the database.
type Snapshot struct {
	ID         string
	Source     string
	EventCount int
	CreatedAt  time.Time
}

// Store is implemented by snapshot backends.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error
	SaveSnapshot(ctx context.Context, source string, events []worldline.Event) (*Snapshot, error)
	LoadEvents(ctx context.Context) ([]worldline.Event, error)
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
}

var _ Store = (*SQLiteStore)(nil)

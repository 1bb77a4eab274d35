// Package store keeps analyzed string records keyed by content hash.
package store

import (
	"context"
	"fmt"

	"github.com/hpungsan/stringlens/internal/record"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Store maps content hash to record. Implementations are safe for concurrent use.
//
// Insert fails with ALREADY_EXISTS when the ID is present and never overwrites.
// Get and Delete fail with NOT_FOUND when the ID is absent.
// List returns records in insertion order.
type Store interface {
	Insert(ctx context.Context, r *record.StringRecord) error
	Get(ctx context.Context, id string) (*record.StringRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]record.StringRecord, error)
	Len(ctx context.Context) (int, error)
	Close() error
}

// Open creates the store named by backend. path is only used by the sqlite backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

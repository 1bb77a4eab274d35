package store

import (
	"context"
	"database/sql"

	"github.com/hpungsan/stringlens/internal/db"
	"github.com/hpungsan/stringlens/internal/record"
)

// SQLite is a Store backed by a SQLite database.
// Uniqueness is enforced by the table's primary key.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and migrates) the database at path. Use db.MemoryPath for a throwaway store.
func NewSQLite(path string) (*SQLite, error) {
	database, err := db.Init(path)
	if err != nil {
		return nil, err
	}
	return &SQLite{db: database}, nil
}

func (s *SQLite) Insert(ctx context.Context, r *record.StringRecord) error {
	return db.Insert(ctx, s.db, r)
}

func (s *SQLite) Get(ctx context.Context, id string) (*record.StringRecord, error) {
	return db.GetByID(ctx, s.db, id)
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	return db.Delete(ctx, s.db, id)
}

func (s *SQLite) List(ctx context.Context) ([]record.StringRecord, error) {
	return db.List(ctx, s.db)
}

func (s *SQLite) Len(ctx context.Context) (int, error) {
	return db.Count(ctx, s.db)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

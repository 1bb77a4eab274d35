package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/record"
)

const selectColumns = `
	SELECT id, value, length, is_palindrome, unique_characters,
		word_count, frequency_json, created_at
	FROM strings
`

// Insert stores a new record. A record with the same ID yields ALREADY_EXISTS.
func Insert(ctx context.Context, db *sql.DB, r *record.StringRecord) error {
	freqJSON, err := json.Marshal(r.Properties.CharacterFrequencyMap)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO strings (
			id, value, length, is_palindrome, unique_characters,
			word_count, frequency_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query,
		r.ID, r.Value, r.Properties.Length, r.Properties.IsPalindrome,
		r.Properties.UniqueCharacters, r.Properties.WordCount,
		string(freqJSON), r.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewAlreadyExists(r.ID)
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByID retrieves a record by its content hash.
func GetByID(ctx context.Context, db *sql.DB, id string) (*record.StringRecord, error) {
	row := db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return r, nil
}

// List returns every record in insertion order.
func List(ctx context.Context, db *sql.DB) ([]record.StringRecord, error) {
	rows, err := db.QueryContext(ctx, selectColumns+" ORDER BY rowid")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	records := make([]record.StringRecord, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return records, nil
}

// Count returns the number of stored records.
func Count(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM strings").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// Delete permanently removes a record. A missing ID yields NOT_FOUND.
func Delete(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, "DELETE FROM strings WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a single row into a StringRecord.
func scanRecord(row scanner) (*record.StringRecord, error) {
	var (
		r         record.StringRecord
		freqJSON  string
		createdAt int64
	)

	err := row.Scan(
		&r.ID, &r.Value, &r.Properties.Length, &r.Properties.IsPalindrome,
		&r.Properties.UniqueCharacters, &r.Properties.WordCount,
		&freqJSON, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	r.Properties.SHA256Hash = r.ID
	r.CreatedAt = time.Unix(0, createdAt).UTC()

	r.Properties.CharacterFrequencyMap = map[string]int{}
	if err := json.Unmarshal([]byte(freqJSON), &r.Properties.CharacterFrequencyMap); err != nil {
		return nil, err
	}
	if r.Properties.CharacterFrequencyMap == nil {
		r.Properties.CharacterFrequencyMap = map[string]int{}
	}

	return &r, nil
}

package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/zaloga/internal/db"
)

// SQLiteBackend stores documents as rows of the documents table.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend returns a backend using database, creating the documents
// table if it doesn't exist.
func NewSQLiteBackend(database *sql.DB) (*SQLiteBackend, error) {
	if err := db.EnsureSchema(database); err != nil {
		return nil, err
	}
	return &SQLiteBackend{db: database}, nil
}

// Load returns the payload of the named document.
func (b *SQLiteBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT payload FROM documents WHERE name = ?`, name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return payload, nil
}

// Save upserts the named document in a single statement.
func (b *SQLiteBackend) Save(ctx context.Context, name string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO documents (name, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

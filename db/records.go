// ABOUTME: SQLite implementation of the store row backend
// ABOUTME: All record kinds share one table keyed by (kind, id) holding JSON data
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

// Backend stores rows in the records table.
type Backend struct {
	db *sql.DB
}

// NewBackend wraps an already-initialized database.
func NewBackend(database *sql.DB) *Backend {
	return &Backend{db: database}
}

// Open opens (creating if needed) the database at path and returns a backend over it.
func Open(path string) (*Backend, error) {
	database, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	return NewBackend(database), nil
}

func (b *Backend) Insert(ctx context.Context, row store.Row) error {
	now := time.Now().UTC()
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO records (kind, id, parent_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(row.Kind), row.ID, row.ParentID, string(row.Data), now, now)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return store.ErrAlreadyExists
	}
	return err
}

func (b *Backend) Update(ctx context.Context, row store.Row) error {
	res, err := b.db.ExecContext(ctx, `
		UPDATE records
		SET parent_id = ?, data = ?, updated_at = ?
		WHERE kind = ? AND id = ?
	`, row.ParentID, string(row.Data), time.Now().UTC(), string(row.Kind), row.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, kind models.Kind, id string) (store.Row, error) {
	row := store.Row{Kind: kind}
	var data string

	err := b.db.QueryRowContext(ctx, `
		SELECT seq, id, parent_id, data FROM records WHERE kind = ? AND id = ?
	`, string(kind), id).Scan(&row.Seq, &row.ID, &row.ParentID, &data)

	if err == sql.ErrNoRows {
		return store.Row{}, store.ErrNotFound
	}
	if err != nil {
		return store.Row{}, err
	}

	row.Data = []byte(data)
	return row, nil
}

func (b *Backend) List(ctx context.Context, kind models.Kind, parentID string) ([]store.Row, error) {
	var rows *sql.Rows
	var err error

	if parentID != "" {
		rows, err = b.db.QueryContext(ctx, `
			SELECT seq, id, parent_id, data FROM records
			WHERE kind = ? AND parent_id = ?
			ORDER BY seq
		`, string(kind), parentID)
	} else {
		rows, err = b.db.QueryContext(ctx, `
			SELECT seq, id, parent_id, data FROM records
			WHERE kind = ?
			ORDER BY seq
		`, string(kind))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []store.Row
	for rows.Next() {
		row := store.Row{Kind: kind}
		var data string
		if err := rows.Scan(&row.Seq, &row.ID, &row.ParentID, &data); err != nil {
			return nil, err
		}
		row.Data = []byte(data)
		result = append(result, row)
	}

	return result, rows.Err()
}

func (b *Backend) Delete(ctx context.Context, kind models.Kind, id string) error {
	res, err := b.db.ExecContext(ctx, `DELETE FROM records WHERE kind = ? AND id = ?`, string(kind), id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}

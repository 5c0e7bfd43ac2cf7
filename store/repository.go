// ABOUTME: Generic typed repository over a row backend
// ABOUTME: Encodes records as JSON so callers only ever hold copies
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/activator/models"
)

// Record is implemented by every stored model.
type Record interface {
	RecordID() string
	ParentID() string
}

// Repository stores records of one kind.
type Repository[T Record] struct {
	backend    Backend
	kind       models.Kind
	parentKind models.Kind
}

// NewRepository creates a repository for kind. When parentKind is set, inserts
// fail with ErrDanglingReference unless the parent row exists.
func NewRepository[T Record](backend Backend, kind, parentKind models.Kind) *Repository[T] {
	return &Repository[T]{backend: backend, kind: kind, parentKind: parentKind}
}

func (r *Repository[T]) Kind() models.Kind {
	return r.kind
}

// Insert stores a new record.
func (r *Repository[T]) Insert(ctx context.Context, rec T) error {
	if r.parentKind != "" {
		if _, err := r.backend.Get(ctx, r.parentKind, rec.ParentID()); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%s %s: %w", r.kind, rec.RecordID(), ErrDanglingReference)
			}
			return err
		}
	}

	row, err := r.encode(rec)
	if err != nil {
		return err
	}
	return r.backend.Insert(ctx, row)
}

// Save overwrites an existing record.
func (r *Repository[T]) Save(ctx context.Context, rec T) error {
	row, err := r.encode(rec)
	if err != nil {
		return err
	}
	return r.backend.Update(ctx, row)
}

// Get returns the record with id or ErrNotFound.
func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	row, err := r.backend.Get(ctx, r.kind, id)
	if err != nil {
		return nil, err
	}
	return r.decode(row)
}

// List returns the records under parentID in insertion order.
func (r *Repository[T]) List(ctx context.Context, parentID string) ([]T, error) {
	rows, err := r.backend.List(ctx, r.kind, parentID)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, err := r.decode(row)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// All returns every record of this kind.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	return r.List(ctx, "")
}

// Find returns the first record under parentID matching match, or nil.
func (r *Repository[T]) Find(ctx context.Context, parentID string, match func(T) bool) (*T, error) {
	records, err := r.List(ctx, parentID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if match == nil || match(records[i]) {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.backend.Delete(ctx, r.kind, id)
}

func (r *Repository[T]) encode(rec T) (Row, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return Row{}, fmt.Errorf("failed to encode %s: %w", r.kind, err)
	}
	return Row{
		Kind:     r.kind,
		ID:       rec.RecordID(),
		ParentID: rec.ParentID(),
		Data:     data,
	}, nil
}

func (r *Repository[T]) decode(row Row) (*T, error) {
	var rec T
	if err := json.Unmarshal(row.Data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s: %w", r.kind, row.ID, err)
	}
	return &rec, nil
}

// ABOUTME: In-memory row backend
// ABOUTME: Default storage; lives for the lifetime of the process
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/harperreed/activator/models"
)

// MemoryBackend keeps rows in maps guarded by a RWMutex.
type MemoryBackend struct {
	mu   sync.RWMutex
	rows map[models.Kind]map[string]Row
	seq  int64
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{rows: make(map[models.Kind]map[string]Row)}
}

func (m *MemoryBackend) Insert(_ context.Context, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID, ok := m.rows[row.Kind]
	if !ok {
		byID = make(map[string]Row)
		m.rows[row.Kind] = byID
	}
	if _, exists := byID[row.ID]; exists {
		return ErrAlreadyExists
	}

	m.seq++
	row.Seq = m.seq
	row.Data = append([]byte(nil), row.Data...)
	byID[row.ID] = row
	return nil
}

func (m *MemoryBackend) Update(_ context.Context, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rows[row.Kind][row.ID]
	if !ok {
		return ErrNotFound
	}
	row.Seq = existing.Seq
	row.Data = append([]byte(nil), row.Data...)
	m.rows[row.Kind][row.ID] = row
	return nil
}

func (m *MemoryBackend) Get(_ context.Context, kind models.Kind, id string) (Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[kind][id]
	if !ok {
		return Row{}, ErrNotFound
	}
	return row, nil
}

func (m *MemoryBackend) List(_ context.Context, kind models.Kind, parentID string) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows []Row
	for _, row := range m.rows[kind] {
		if parentID != "" && row.ParentID != parentID {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Seq < rows[j].Seq })
	return rows, nil
}

func (m *MemoryBackend) Delete(_ context.Context, kind models.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[kind][id]; !ok {
		return ErrNotFound
	}
	delete(m.rows[kind], id)
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/record"
)

// Memory is an in-process Store. Insert and Delete hold the write lock,
// so the uniqueness check and the write happen atomically.
type Memory struct {
	mu      sync.RWMutex
	records map[string]record.StringRecord
	order   []string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]record.StringRecord),
	}
}

func (m *Memory) Insert(_ context.Context, r *record.StringRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[r.ID]; exists {
		return errors.NewAlreadyExists(r.ID)
	}
	m.records[r.ID] = *r
	m.order = append(m.order, r.ID)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*record.StringRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok {
		return nil, errors.NewNotFound(id)
	}
	return &r, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return errors.NewNotFound(id)
	}
	delete(m.records, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return nil
}

func (m *Memory) List(_ context.Context) ([]record.StringRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]record.StringRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id])
	}
	return out, nil
}

func (m *Memory) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

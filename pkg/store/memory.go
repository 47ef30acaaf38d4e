package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with in-memory maps. Used in tests and when
// no archive backend is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry // key: fingerprint
}

// NewMemoryStore creates an empty in-memory archive.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

func (m *MemoryStore) Put(_ context.Context, entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *entry
	if prev, ok := m.entries[entry.Fingerprint]; ok {
		cp.ID = prev.ID
	} else if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if cp.StoredAt.IsZero() {
		cp.StoredAt = time.Now().UTC()
	}
	m.entries[cp.Fingerprint] = &cp
	entry.ID = cp.ID
	entry.StoredAt = cp.StoredAt
	return nil
}

func (m *MemoryStore) GetByFingerprint(_ context.Context, fingerprint string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[fingerprint]
	if !ok {
		return nil, &ErrNotFound{Key: fingerprint}
	}
	cp := *e
	return &cp, nil
}

func (m *MemoryStore) ListByWorkspace(_ context.Context, workspaceID string, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Entry
	for _, e := range m.entries {
		if e.WorkspaceID == workspaceID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StoredAt.After(result[j].StoredAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MemoryStore) Delete(_ context.Context, fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[fingerprint]; !ok {
		return &ErrNotFound{Key: fingerprint}
	}
	delete(m.entries, fingerprint)
	return nil
}

func (m *MemoryStore) Ping(_ context.Context) error { return nil }

func (m *MemoryStore) Close(_ context.Context) error { return nil }

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

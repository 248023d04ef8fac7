package data

import (
	"context"
	"sync"
	"time"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

type memoryEntry struct {
	ds      types.Dataset
	expires time.Time
}

// MemoryStore is an in-process SessionStore for single instance deployments.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, ds types.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictExpired()
	m.entries[sessionID] = memoryEntry{ds: ds, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (types.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[sessionID]
	if !ok || !m.now().Before(entry.expires) {
		delete(m.entries, sessionID)
		return types.Dataset{}, ErrSessionNotFound
	}

	entry.expires = m.now().Add(m.ttl)
	m.entries[sessionID] = entry
	return entry.ds, nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, sessionID)
	return nil
}

// caller holds mu
func (m *MemoryStore) evictExpired() {
	now := m.now()
	for id, entry := range m.entries {
		if !now.Before(entry.expires) {
			delete(m.entries, id)
		}
	}
}

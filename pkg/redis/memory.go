package redis

import (
	"context"
	"sync"
	"time"
)

type memoryRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Time
	issued  map[int64]map[string]time.Time
	now     func() time.Time
}

// NewMemory keeps revocations in process memory. It serves tests and single
// instance deployments without a Redis server.
func NewMemory() IRedis {
	return &memoryRevocations{
		entries: make(map[string]time.Time),
		issued:  make(map[int64]map[string]time.Time),
		now:     time.Now,
	}
}

func (m *memoryRevocations) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[tokenID] = m.now().Add(ttl)
	return nil
}

func (m *memoryRevocations) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt, ok := m.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !m.now().Before(expiresAt) {
		delete(m.entries, tokenID)
		return false, nil
	}
	return true, nil
}

func (m *memoryRevocations) TrackToken(_ context.Context, userID int64, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tokens, ok := m.issued[userID]
	if !ok {
		tokens = make(map[string]time.Time)
		m.issued[userID] = tokens
	}
	tokens[tokenID] = m.now().Add(ttl)
	return nil
}

func (m *memoryRevocations) RevokeUserTokens(_ context.Context, userID int64, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for tokenID, expiresAt := range m.issued[userID] {
		if now.Before(expiresAt) {
			m.entries[tokenID] = now.Add(ttl)
		}
	}
	delete(m.issued, userID)
	return nil
}

func (m *memoryRevocations) Close() error {
	return nil
}

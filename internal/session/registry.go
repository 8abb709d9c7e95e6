package session

import (
	"context"
	"sync"
)

// Registry tracks refresh tokens that are still usable for minting new
// access tokens. Presence means valid; Revoke of an absent token is a
// no-op.
type Registry interface {
	Register(ctx context.Context, token string) error
	IsValid(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

// Memory keeps the valid set in process memory. Sessions do not survive
// a restart and the set is not shared across instances; use Redis for
// multi-instance deployments.
type Memory struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{tokens: make(map[string]struct{})}
}

func (m *Memory) Register(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = struct{}{}
	return nil
}

func (m *Memory) IsValid(_ context.Context, token string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tokens[token]
	return ok, nil
}

func (m *Memory) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

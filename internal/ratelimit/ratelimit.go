package ratelimit

import (
	"sync"
	"time"
)

// PerClient bounds how many events each client key (normally an IP
// address) may spend within a fixed window. The first event starts the
// client's window; once limit events are used, every further event is
// rejected until the window has fully elapsed, at which point the
// count resets.
type PerClient struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration

	// now is swapped out in tests that exercise window boundaries.
	now func() time.Time
}

type window struct {
	start time.Time
	count int
}

func NewPerClient(limit int, windowSize time.Duration) *PerClient {
	return &PerClient{
		clients: make(map[string]*window),
		limit:   limit,
		window:  windowSize,
		now:     time.Now,
	}
}

// Allow reports whether the client identified by key may proceed.
func (p *PerClient) Allow(key string) bool {
	now := p.now()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.prune(now)

	c, ok := p.clients[key]
	if !ok {
		c = &window{start: now}
		p.clients[key] = c
	}

	c.count++
	return c.count <= p.limit
}

// prune drops every client whose window has elapsed; a pruned client
// starts a fresh window (and count) on its next event. This doubles as
// the memory bound on the map.
func (p *PerClient) prune(now time.Time) {
	for key, c := range p.clients {
		if now.Sub(c.start) >= p.window {
			delete(p.clients, key)
		}
	}
}

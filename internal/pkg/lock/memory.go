package lock

import (
	"context"
	"sync"
)

// MemoryProvider is a process-local Provider backed by a mutex-guarded
// key set. It reproduces the single-process admission semantics: at
// most one holder per key, fail-fast on contention.
type MemoryProvider struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemoryProvider creates an empty in-memory lock provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{held: make(map[string]struct{})}
}

// TryAcquire acquires key or fails with ErrHeld. The returned release
// func is idempotent.
func (p *MemoryProvider) TryAcquire(_ context.Context, key string) (ReleaseFunc, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.held[key]; ok {
		return nil, ErrHeld
	}
	p.held[key] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.held, key)
			p.mu.Unlock()
		})
	}
	return release, nil
}

package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryBackend is a process-local Backend used when Redis is unavailable and in tests.
// Sessions are lost on restart.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]memoryEntry), now: time.Now}
}

func (b *MemoryBackend) Put(_ context.Context, jti string, userID uint, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sweepLocked()
	b.entries[jti] = memoryEntry{userID: userID, expiresAt: b.now().Add(ttl)}
	return nil
}

func (b *MemoryBackend) Get(_ context.Context, jti string) (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[jti]
	if !ok {
		return 0, ErrInvalidSession
	}
	if !b.now().Before(e.expiresAt) {
		delete(b.entries, jti)
		return 0, ErrInvalidSession
	}
	return e.userID, nil
}

func (b *MemoryBackend) Delete(_ context.Context, jti string) error {
	b.mu.Lock()
	delete(b.entries, jti)
	b.mu.Unlock()
	return nil
}

// Len reports the number of live entries.
func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sweepLocked()
	return len(b.entries)
}

func (b *MemoryBackend) sweepLocked() {
	now := b.now()
	for k, e := range b.entries {
		if !now.Before(e.expiresAt) {
			delete(b.entries, k)
		}
	}
}

// Package secret parks one-time payloads (generated credentials) between a
// form post and the page that shows them. A payload can be taken once.
package secret

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("secret not found or already taken")

// Vault stores payloads under random tokens.
type Vault interface {
	Put(ctx context.Context, payload []byte) (string, error)
	Take(ctx context.Context, token string) ([]byte, error)
}

type entry struct {
	payload []byte
	expires time.Time
}

// MemoryVault keeps payloads in process memory.
type MemoryVault struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewMemoryVault(ttl time.Duration) *MemoryVault {
	return &MemoryVault{ttl: ttl, now: time.Now, entries: make(map[string]entry)}
}

func (v *MemoryVault) Put(_ context.Context, payload []byte) (string, error) {
	token := uuid.NewString()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.sweep()
	v.entries[token] = entry{payload: append([]byte(nil), payload...), expires: v.now().Add(v.ttl)}
	return token, nil
}

func (v *MemoryVault) Take(_ context.Context, token string) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[token]
	delete(v.entries, token)
	if !ok || !v.now().Before(e.expires) {
		return nil, ErrNotFound
	}
	return e.payload, nil
}

// sweep drops expired entries. Callers hold mu.
func (v *MemoryVault) sweep() {
	now := v.now()
	for token, e := range v.entries {
		if !now.Before(e.expires) {
			delete(v.entries, token)
		}
	}
}

package cache

import (
	"context"
	"sync"

	"github.com/leadlane/backend/internal/domain/crm"
)

// KeyedMutex is an in-process crm.RefreshLocker. Idle keys are released so the
// map only holds keys that are locked or awaited.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch      chan struct{}
	waiters int
}

// NewKeyedMutex creates an empty KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]*slot)}
}

// Lock acquires key, honouring ctx cancellation while waiting
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	s, ok := k.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		k.slots[key] = s
	}
	s.waiters++
	k.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, s, false)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { k.release(key, s, true) })
	}, nil
}

func (k *KeyedMutex) release(key string, s *slot, held bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if held {
		<-s.ch
	}
	s.waiters--
	if s.waiters == 0 {
		delete(k.slots, key)
	}
}

// Len returns the number of keys currently locked or awaited
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.slots)
}

var _ crm.RefreshLocker = (*KeyedMutex)(nil)

package cache

import (
	"sync"
	"time"
)

// MemoryStore is a simple in-memory key-value store with expiration
type MemoryStore[V any] struct {
	mu    sync.RWMutex
	items map[string]memoryItem[V]
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

type memoryItem[V any] struct {
	value      V
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store. A positive cleanupInterval
// starts a janitor goroutine that runs until Close.
func NewMemoryStore[V any](cleanupInterval time.Duration) *MemoryStore[V] {
	store := &MemoryStore[V]{
		items: make(map[string]memoryItem[V]),
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go store.cleanupExpired(cleanupInterval)
	}

	return store
}

// Set stores a key-value pair with expiration
func (ms *MemoryStore[V]) Set(key string, value V, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = memoryItem[V]{
		value:      value,
		expireTime: ms.now().Add(expiration),
	}
}

// Get retrieves a value by key. The second result is false if the key is
// missing or expired.
func (ms *MemoryStore[V]) Get(key string) (V, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var zero V
	item, exists := ms.items[key]
	if !exists {
		return zero, false
	}

	if ms.now().After(item.expireTime) {
		return zero, false
	}

	return item.value, true
}

// Delete removes a key
func (ms *MemoryStore[V]) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// Close stops the janitor goroutine
func (ms *MemoryStore[V]) Close() {
	ms.once.Do(func() { close(ms.stop) })
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore[V]) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.purge()
		}
	}
}

func (ms *MemoryStore[V]) purge() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, item := range ms.items {
		if now.After(item.expireTime) {
			delete(ms.items, key)
		}
	}
}

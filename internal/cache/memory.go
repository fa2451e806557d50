package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ignatzorin/recipe-social-backend/internal/goroutine"
)

// MemoryCache in-memory кэш с TTL. Используется, когда Redis не настроен.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache создаёт кэш и запускает фоновую очистку, пока жив ctx.
func NewMemoryCache(ctx context.Context, cleanupInterval time.Duration) *MemoryCache {
	mc := &MemoryCache{
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}

	if cleanupInterval > 0 {
		goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
			mc.cleanupLoop(ctx, cleanupInterval)
		})
	}

	return mc
}

// Get читает значение из кэша.
func (mc *MemoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	mc.mu.RLock()
	entry, exists := mc.entries[key]
	mc.mu.RUnlock()

	if !exists || mc.now().After(entry.expiresAt) {
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("memory cache: decode %s: %w", key, err)
	}

	return true, nil
}

// Set сохраняет значение с TTL.
func (mc *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("memory cache: encode %s: %w", key, err)
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.entries[key] = &cacheEntry{
		data:      data,
		expiresAt: mc.now().Add(ttl),
	}

	return nil
}

// Delete удаляет ключ.
func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	delete(mc.entries, key)
	return nil
}

func (mc *MemoryCache) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mc.removeExpired()
		}
	}
}

func (mc *MemoryCache) removeExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	for key, entry := range mc.entries {
		if now.After(entry.expiresAt) {
			delete(mc.entries, key)
		}
	}
}

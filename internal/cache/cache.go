// Package cache кэш с TTL для редко меняющихся данных (настройки приватности).
// Значения хранятся в JSON, поэтому реализации взаимозаменяемы.
package cache

import (
	"context"
	"time"
)

// Cache общий контракт для in-memory и Redis реализаций.
type Cache interface {
	// Get декодирует значение в dest. found=false, если ключа нет или он истёк.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

package cache

import (
	"context"
	"time"

	"github.com/blindbox-next/internal/logger"
)

// Remember 旁路缓存：命中直接返回，未命中调用 load 并回写。
// 缓存读写失败只记录日志，不影响 load 的结果；ttl <= 0 时跳过缓存。
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if ttl <= 0 || !Enabled() {
		return load()
	}
	var cached T
	hit, err := GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("cache_read_failed", "key", buildKey(key), "error", err)
	} else if hit {
		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := SetJSON(ctx, key, value, ttl); err != nil {
		logger.Warnw("cache_write_failed", "key", buildKey(key), "error", err)
	}
	return value, nil
}

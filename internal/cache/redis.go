package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blindbox-next/internal/config"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix 未配置前缀时使用的键名前缀
const DefaultPrefix = "bb"

var (
	redisClient  *redis.Client
	redisPrefix  string
	redisEnabled bool
)

// InitRedis 初始化 Redis 客户端，未启用时缓存与限流均降级为直通
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		redisEnabled = false
		return nil
	}
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", addr, port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		redisEnabled = false
		return fmt.Errorf("redis ping failed: %w", err)
	}
	Use(client, cfg.Prefix)
	return nil
}

// Use 使用已有客户端（测试或外部注入）
func Use(client *redis.Client, prefix string) {
	redisClient = client
	redisPrefix = strings.TrimSpace(prefix)
	redisEnabled = client != nil
}

// Close 关闭 Redis 客户端
func Close() error {
	if redisClient == nil {
		return nil
	}
	err := redisClient.Close()
	redisClient = nil
	redisEnabled = false
	return err
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return redisEnabled && redisClient != nil
}

// Client 获取 Redis 客户端
func Client() *redis.Client {
	if !Enabled() {
		return nil
	}
	return redisClient
}

// GetJSON 获取 JSON 缓存
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	val, err := redisClient.Get(ctx, buildKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return redisClient.Set(ctx, buildKey(key), payload, ttl).Err()
}

// Del 删除缓存，支持一次删除多个键
func Del(ctx context.Context, keys ...string) error {
	if !Enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, buildKey(key))
	}
	return redisClient.Del(ctx, full...).Err()
}

// BuildKey 拼接带前缀的键名
func BuildKey(key string) string {
	return buildKey(key)
}

func buildKey(key string) string {
	prefix := redisPrefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return prefix
	}
	return fmt.Sprintf("%s:%s", prefix, trimmed)
}

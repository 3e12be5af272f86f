package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/blindbox-next/internal/http/response"
	"github.com/blindbox-next/internal/i18n"
	"github.com/blindbox-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
	// FailOpen 为 true 时 Redis 异常放行请求，仅记录日志
	FailOpen bool
}

// Enabled 规则是否生效
func (r RateLimitRule) Enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

var errRateLimitReply = errors.New("unexpected rate limit reply")

// 固定窗口计数：首次命中设置过期，返回 {计数, 剩余秒数}
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimiter Redis 固定窗口限流器
type RateLimiter struct {
	client *redis.Client
	rule   RateLimitRule
}

// NewRateLimiter 创建限流器，client 为空或规则无效时始终放行
func NewRateLimiter(client *redis.Client, rule RateLimitRule) *RateLimiter {
	return &RateLimiter{client: client, rule: rule}
}

// Allow 计数一次并返回是否放行及需等待的秒数
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	if l == nil || l.client == nil || !l.rule.Enabled() {
		return true, 0, nil
	}
	values, err := rateLimitScript.Run(ctx, l.client, []string{l.buildKey(key)}, l.rule.WindowSeconds).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(values) < 2 {
		return false, 0, errRateLimitReply
	}
	if values[0] <= int64(l.rule.MaxRequests) {
		return true, 0, nil
	}
	return false, retryAfterSeconds(values[1], l.rule.WindowSeconds), nil
}

func (l *RateLimiter) buildKey(key string) string {
	key = strings.TrimSpace(key)
	if l.rule.Prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", l.rule.Prefix, key)
}

func retryAfterSeconds(ttl int64, window int) int {
	wait := int(ttl)
	if wait < 1 {
		wait = window
	}
	if wait < 1 {
		wait = 1
	}
	return wait
}

// RateLimitMiddleware Redis 频率限制中间件
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	limiter := NewRateLimiter(client, rule)
	return func(c *gin.Context) {
		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}

		allowed, wait, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			if rule.FailOpen {
				logger.Warnw("rate_limit_unavailable", "prefix", rule.Prefix, "error", err)
				c.Next()
				return
			}
			response.Internal(c, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if !allowed {
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			c.Header("Retry-After", strconv.Itoa(wait))
			response.TooManyRequests(c, i18n.Sprintf(i18n.ResolveLocale(c), msgKey, wait))
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

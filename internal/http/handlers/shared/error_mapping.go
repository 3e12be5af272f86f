package shared

import (
	"errors"

	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/http/response"
	"github.com/blindbox-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedHandlerError 定义业务错误到接口错误响应的映射关系。
type MappedHandlerError struct {
	Target error
	Code   int
	Key    string
	// Log 为 true 时即使命中规则也记录原始错误
	Log bool
}

// RespondWithMappedError 按规则表返回错误，未命中时使用兜底响应并记录日志。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			var logged error
			if rule.Log {
				logged = err
			}
			RespondError(c, rule.Code, rule.Key, logged)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedHandlerErrors 合并多组规则
func ConcatMappedHandlerErrors(groups ...[]MappedHandlerError) []MappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// StoreErrorRules 存储与目录完整性错误，所有接口共用
var StoreErrorRules = []MappedHandlerError{
	{Target: blindbox.ErrEmptyTier, Code: response.CodeInternal, Key: "error.catalog_tier_empty", Log: true},
	{Target: service.ErrStoreUnavailable, Code: response.CodeInternal, Key: "error.store_unavailable", Log: true},
}

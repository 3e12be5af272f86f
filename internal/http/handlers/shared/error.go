package shared

import (
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/http/response"
	"github.com/blindbox-next/internal/i18n"
	"github.com/blindbox-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 与路由信息的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	fields := []interface{}{}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			fields = append(fields, "request_id", id)
		}
	}
	if c.Request != nil {
		fields = append(fields, "method", c.Request.Method, "route", c.FullPath())
	}
	return logger.SW(fields...)
}

// RespondError 返回国际化错误响应；err 非空时记录日志，服务端错误按 error 级别输出。
func RespondError(c *gin.Context, code int, key string, err error) {
	appErr := response.NewKeyedError(code, key, err).
		Localize(i18n.T(i18n.ResolveLocale(c), key))
	if err != nil {
		log := RequestLog(c)
		if response.IsServerError(appErr.Code) {
			log.Errorw("handler_error", "code", appErr.Code, "key", appErr.Key, "error", err)
		} else {
			log.Warnw("handler_error", "code", appErr.Code, "key", appErr.Key, "error", err)
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}

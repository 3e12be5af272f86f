package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/blindbox-next/internal/config"
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/http/response"
	"github.com/blindbox-next/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Cache-Control",
			"X-Requested-With",
			"Accept-Language",
			constants.HeaderRequestID,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(constants.HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		switch {
		case len(c.Errors) > 0:
			log.Errorw("request", "errors", c.Errors.String())
		case c.Writer.Status() >= 500:
			log.Errorw("request")
		case c.Writer.Status() >= 400:
			log.Warnw("request")
		default:
			log.Infow("request")
		}
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(constants.ContextKeyRequestID)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// NoRouteHandler 未匹配路由时返回统一结构的 404
func NoRouteHandler(c *gin.Context) {
	response.NotFound(c, i18n.T(i18n.ResolveLocale(c), "error.not_found"))
}

// RecoveryMiddleware 捕获 panic 并返回统一结构的 500
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		sugar.Errorw("request_panic_recovered",
			"request_id", getRequestID(c),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal"))
		c.Abort()
	})
}

package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/blindbox-next/internal/cache"
	"github.com/blindbox-next/internal/config"
	adminhandlers "github.com/blindbox-next/internal/http/handlers/admin"
	publichandlers "github.com/blindbox-next/internal/http/handlers/public"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	drawRule := RateLimitRule{
		Prefix:        cache.BuildKey("rate:draw"),
		WindowSeconds: cfg.Security.DrawRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.DrawRateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
		FailOpen:      true,
	}
	drawLimiter := RateLimitMiddleware(cache.Client(), drawRule, KeyByIP)

	// 中间件
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(log))
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.NoRoute(NoRouteHandler)

	// 商品图片
	imageDir := strings.TrimSpace(cfg.Blindbox.ImageDir)
	if imageDir == "" {
		imageDir = "./img"
	}
	r.Static("/img", imageDir)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/config", publicHandler.GetProbabilities)
		}

		// 下单与背包（同一 IP 共享抽取限流）
		apiV1.POST("/checkout", drawLimiter, publicHandler.Checkout)
		backpack := apiV1.Group("/backpack")
		{
			backpack.GET("", publicHandler.GetBackpack)
			backpack.POST("/items/:id/open", drawLimiter, publicHandler.OpenBackpackItem)
		}

		// 管理接口
		admin := apiV1.Group("/admin")
		{
			admin.GET("/config", adminHandler.GetProbabilities)
			admin.PUT("/config", adminHandler.UpdateProbabilities)
			admin.POST("/products/:id/stock", adminHandler.AdjustStock)
			admin.GET("/draw-records", adminHandler.GetDrawRecords)
		}
	}

	// 健康检查
	r.GET("/healthz", healthHandler(c))

	return r
}

// healthHandler 健康检查，数据库不可用时返回 503
func healthHandler(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		report := c.Health(pingCtx)
		if !report.Healthy() {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "components": report})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "components": report})
	}
}

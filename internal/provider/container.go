package provider

import (
	"context"
	"time"

	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/cache"
	"github.com/blindbox-next/internal/config"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/models"
	"github.com/blindbox-next/internal/queue"
	"github.com/blindbox-next/internal/repository"
	"github.com/blindbox-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Engine      *blindbox.Engine

	// Repositories
	ProductRepo    repository.ProductRepository
	BackpackRepo   repository.BackpackRepository
	SettingRepo    repository.SettingRepository
	DrawRecordRepo repository.DrawRecordRepository

	// Services
	ProbabilityService *service.ProbabilityService
	InventoryService   *service.InventoryService
	BackpackService    *service.BackpackService
	DrawRecordService  *service.DrawRecordService
}

// NewContainer 初始化容器（使用全局数据库连接）
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}
	return NewContainerWithDB(cfg, models.DB, queueClient, nil)
}

// NewContainerWithDB 使用指定数据库、队列与抽取引擎初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, engine *blindbox.Engine) *Container {
	if engine == nil {
		engine = blindbox.NewEngine(nil)
	}
	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
		Engine:      engine,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.ProductRepo = repository.NewProductRepository(db)
	c.BackpackRepo = repository.NewBackpackRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.DrawRecordRepo = repository.NewDrawRecordRepository(db)
}

func (c *Container) initServices() {
	defaults := c.Config.Blindbox.DefaultProbabilities
	c.ProbabilityService = service.NewProbabilityService(c.SettingRepo, blindbox.Weights{
		Common: defaults.Common,
		Rare:   defaults.Rare,
		Secret: defaults.Secret,
	})
	if _, err := c.ProbabilityService.Load(); err != nil {
		logger.Warnw("provider_load_probabilities_failed", "error", err)
	}

	cacheTTL := time.Duration(c.Config.Blindbox.ProductCacheTTLSeconds) * time.Second
	c.InventoryService = service.NewInventoryService(c.ProductRepo, cacheTTL)
	c.DrawRecordService = service.NewDrawRecordService(c.DrawRecordRepo)
	c.BackpackService = service.NewBackpackService(service.BackpackServiceOptions{
		BackpackRepo:        c.BackpackRepo,
		ProductRepo:         c.ProductRepo,
		Probabilities:       c.ProbabilityService,
		Inventory:           c.InventoryService,
		DrawRecords:         c.DrawRecordService,
		QueueClient:         c.QueueClient,
		Engine:              c.Engine,
		MaxCheckoutQuantity: c.Config.Blindbox.MaxCheckoutQuantity,
	})
}

// HealthReport 依赖组件状态
type HealthReport struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
	Queue    string `json:"queue"`
}

// Healthy 数据库可用即视为健康，Redis 与队列仅影响缓存与审计
func (r HealthReport) Healthy() bool {
	return r.Database == healthUp
}

const (
	healthUp       = "up"
	healthDown     = "down"
	healthDisabled = "disabled"
)

// Health 检查数据库与 Redis 连通性
func (c *Container) Health(ctx context.Context) HealthReport {
	report := HealthReport{Database: healthDown, Redis: healthDisabled, Queue: healthDisabled}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.PingContext(ctx); err == nil {
				report.Database = healthUp
			} else {
				logger.Warnw("health_database_ping_failed", "error", err)
			}
		}
	}
	if client := cache.Client(); client != nil {
		report.Redis = healthUp
		if err := client.Ping(ctx).Err(); err != nil {
			report.Redis = healthDown
			logger.Warnw("health_redis_ping_failed", "error", err)
		}
	}
	if c.QueueClient.Enabled() {
		report.Queue = healthUp
	}
	return report
}

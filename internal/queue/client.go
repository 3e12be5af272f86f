package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blindbox-next/internal/config"
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
)

// Client 队列客户端封装
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// backpackOpenedTaskID 同一背包条目的审计任务只入队一次
func backpackOpenedTaskID(backpackItemID uint) string {
	return fmt.Sprintf("%s:%d", TaskBackpackOpened, backpackItemID)
}

// EnqueueBackpackOpened 推送开盒完成任务，重复入队视为成功
func (c *Client) EnqueueBackpackOpened(ctx context.Context, payload BackpackOpenedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewBackpackOpenedTask(payload)
	if err != nil {
		return err
	}
	options := append([]asynq.Option{
		asynq.Queue(c.defaultQueue),
		asynq.TaskID(backpackOpenedTaskID(payload.BackpackItemID)),
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
		asynq.Retention(24 * time.Hour),
	}, opts...)
	info, err := c.client.EnqueueContext(ctx, task, options...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Debugw("queue_backpack_opened_duplicate", "backpack_item_id", payload.BackpackItemID)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Debugw("queue_backpack_opened_enqueued", "task_id", info.ID, "queue", info.Queue)
	return nil
}

// BuildServerConfig 生成队列服务配置，任务日志与失败回调统一走 zap
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency:     concurrency,
		Queues:          queues,
		ShutdownTimeout: 10 * time.Second,
		Logger:          logger.SW("component", "asynq"),
		ErrorHandler:    asynq.ErrorHandlerFunc(logTaskFailure),
	}
}

func logTaskFailure(_ context.Context, task *asynq.Task, err error) {
	if task == nil {
		return
	}
	logger.Warnw("queue_task_failed", "type", task.Type(), "error", err)
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}

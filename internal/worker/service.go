package worker

import (
	"context"
	"errors"

	"github.com/blindbox-next/internal/config"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/queue"

	"github.com/hibiken/asynq"
)

// ErrQueueDisabled 队列未启用时无法创建 worker
var ErrQueueDisabled = errors.New("queue disabled")

// Service 开盒审计 worker，消费 backpack:opened 任务
type Service struct {
	name   string
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrQueueDisabled
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	mux.Use(loggingMiddleware)
	consumer.Register(mux)
	return &Service{
		name:   "worker",
		server: asynq.NewServer(opt, serverCfg),
		mux:    mux,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动消费并阻塞到 ctx 结束，信号由运行器统一处理
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Stop 停止服务，等待进行中的任务完成
func (s *Service) Stop(context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Shutdown()
	return nil
}

func loggingMiddleware(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
		taskID, _ := asynq.GetTaskID(ctx)
		retried, _ := asynq.GetRetryCount(ctx)
		err := next.ProcessTask(ctx, task)
		if err != nil {
			logger.Warnw("worker_task_failed", "type", task.Type(), "task_id", taskID, "retry", retried, "error", err)
			return err
		}
		logger.Debugw("worker_task_done", "type", task.Type(), "task_id", taskID, "retry", retried)
		return nil
	})
}

package worker

import (
	"context"
	"fmt"

	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/provider"
	"github.com/blindbox-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskBackpackOpened, c.handleBackpackOpened)
}

func (c *Consumer) handleBackpackOpened(_ context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_backpack_opened_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseBackpackOpenedPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_backpack_opened_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.BackpackItemID == 0 {
		logger.Debugw("worker_backpack_opened_skip_invalid_payload", "backpack_item_id", payload.BackpackItemID)
		return nil
	}
	if c.DrawRecordService == nil {
		logger.Warnw("worker_backpack_opened_service_missing", "backpack_item_id", payload.BackpackItemID)
		return nil
	}
	if err := c.DrawRecordService.Record(payload, constants.DrawRecordSourceQueue); err != nil {
		logger.Warnw("worker_backpack_opened_record_failed",
			"backpack_item_id", payload.BackpackItemID,
			"error", err,
		)
		return err
	}
	logger.Debugw("worker_backpack_opened_recorded",
		"backpack_item_id", payload.BackpackItemID,
		"resolved_rarity", payload.ResolvedRarity,
	)
	return nil
}

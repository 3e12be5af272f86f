package queue

import (
	"context"
	"testing"
	"time"

	"github.com/blindbox-next/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueBackpackOpened(context.Background(), BackpackOpenedPayload{BackpackItemID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
}

func TestBackpackOpenedTaskPayload(t *testing.T) {
	openedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	task, err := NewBackpackOpenedTask(BackpackOpenedPayload{
		BackpackItemID:   7,
		ProductID:        2,
		RolledRarity:     "secret",
		ResolvedRarity:   "rare",
		StockDecremented: true,
		OpenedAt:         openedAt,
	})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskBackpackOpened {
		t.Fatalf("task type want %s got %s", TaskBackpackOpened, task.Type())
	}
	payload, err := ParseBackpackOpenedPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.BackpackItemID != 7 || payload.ResolvedRarity != "rare" || !payload.OpenedAt.Equal(openedAt) {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if cfg.Logger == nil || cfg.ErrorHandler == nil {
		t.Fatalf("server config should carry logger and error handler")
	}
}

func TestBuildServerConfigFromQueueConfig(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{
		Host:        " redis.local ",
		Port:        6380,
		DB:          2,
		Concurrency: 3,
		Queues:      map[string]int{"audit": 2},
	})
	if opt.Addr != "redis.local:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 3 || cfg.Queues["audit"] != 2 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}

func TestBackpackOpenedTaskID(t *testing.T) {
	if got := backpackOpenedTaskID(42); got != "backpack:opened:42" {
		t.Fatalf("unexpected task id %s", got)
	}
}

package queue

import (
	"encoding/json"
	"time"

	"github.com/blindbox-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskBackpackOpened 开盒完成任务（写入抽取记录）
	TaskBackpackOpened = constants.TaskBackpackOpened
)

// BackpackOpenedPayload 开盒完成任务载荷
type BackpackOpenedPayload struct {
	BackpackItemID   uint      `json:"backpack_item_id"`
	ProductID        uint      `json:"product_id"`
	RolledRarity     string    `json:"rolled_rarity"`
	ResolvedRarity   string    `json:"resolved_rarity"`
	StockDecremented bool      `json:"stock_decremented"`
	OpenedAt         time.Time `json:"opened_at"`
}

// NewBackpackOpenedTask 创建开盒完成任务
func NewBackpackOpenedTask(payload BackpackOpenedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBackpackOpened, body), nil
}

// ParseBackpackOpenedPayload 解析开盒完成任务载荷
func ParseBackpackOpenedPayload(body []byte) (BackpackOpenedPayload, error) {
	var payload BackpackOpenedPayload
	err := json.Unmarshal(body, &payload)
	return payload, err
}

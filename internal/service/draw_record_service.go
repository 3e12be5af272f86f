package service

import (
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/models"
	"github.com/blindbox-next/internal/queue"
	"github.com/blindbox-next/internal/repository"
)

// DrawRecordService 开盒审计记录服务
type DrawRecordService struct {
	repo repository.DrawRecordRepository
}

// NewDrawRecordService 创建审计记录服务
func NewDrawRecordService(repo repository.DrawRecordRepository) *DrawRecordService {
	return &DrawRecordService{repo: repo}
}

// Record 写入一次开盒的审计记录，重复写入同一条目时忽略
func (s *DrawRecordService) Record(payload queue.BackpackOpenedPayload, source string) error {
	record := &models.DrawRecord{
		BackpackItemID:   payload.BackpackItemID,
		ProductID:        payload.ProductID,
		RolledRarity:     payload.RolledRarity,
		ResolvedRarity:   payload.ResolvedRarity,
		StockDecremented: payload.StockDecremented,
		Source:           source,
		OpenedAt:         payload.OpenedAt,
	}
	created, err := s.repo.Create(record)
	if err != nil {
		return storeError(err)
	}
	if !created {
		logger.Debugw("draw_record_duplicate_skipped", "backpack_item_id", payload.BackpackItemID)
	}
	return nil
}

// List 审计记录分页列表
func (s *DrawRecordService) List(filter repository.DrawRecordListFilter) ([]models.DrawRecord, int64, error) {
	records, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, storeError(err)
	}
	return records, total, nil
}

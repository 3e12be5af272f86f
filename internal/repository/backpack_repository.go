package repository

import (
	"errors"
	"time"

	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/models"

	"gorm.io/gorm"
)

const backpackInsertBatchSize = 200

// BackpackRepository 背包数据访问接口
type BackpackRepository interface {
	CreateBatch(items []models.BackpackItem) error
	ListAll() ([]models.BackpackItem, error)
	GetByID(id uint) (*models.BackpackItem, error)
	MarkOpened(id uint, openedAt time.Time) (int64, error)
	SetOpenedRarity(id uint, rarity string) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) BackpackRepository
}

// GormBackpackRepository GORM 实现
type GormBackpackRepository struct {
	db *gorm.DB
}

// NewBackpackRepository 创建背包仓库
func NewBackpackRepository(db *gorm.DB) *GormBackpackRepository {
	return &GormBackpackRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBackpackRepository) WithTx(tx *gorm.DB) BackpackRepository {
	if tx == nil {
		return r
	}
	return &GormBackpackRepository{db: tx}
}

// Transaction 执行事务
func (r *GormBackpackRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// CreateBatch 批量写入背包条目（整体成功或整体失败）
func (r *GormBackpackRepository) CreateBatch(items []models.BackpackItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&items, backpackInsertBatchSize).Error
	})
}

// ListAll 全量背包条目，最新的在前
func (r *GormBackpackRepository) ListAll() ([]models.BackpackItem, error) {
	var items []models.BackpackItem
	if err := r.db.Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 根据 ID 获取背包条目
func (r *GormBackpackRepository) GetByID(id uint) (*models.BackpackItem, error) {
	var item models.BackpackItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// MarkOpened 仅当条目仍为未开启时切换为已开启，返回受影响行数
func (r *GormBackpackRepository) MarkOpened(id uint, openedAt time.Time) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid backpack item id")
	}
	result := r.db.Model(&models.BackpackItem{}).
		Where("id = ? AND status = ?", id, constants.BackpackStatusUnopened).
		Updates(map[string]interface{}{
			"status":    constants.BackpackStatusOpened,
			"opened_at": openedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SetOpenedRarity 写入开盒最终分配的稀有度
func (r *GormBackpackRepository) SetOpenedRarity(id uint, rarity string) error {
	return r.db.Model(&models.BackpackItem{}).
		Where("id = ? AND status = ?", id, constants.BackpackStatusOpened).
		Update("opened_rarity", rarity).Error
}

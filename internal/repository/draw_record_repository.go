package repository

import (
	"strings"

	"github.com/blindbox-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DrawRecordListFilter 查询抽取记录列表的过滤条件
type DrawRecordListFilter struct {
	Page           int
	PageSize       int
	ProductID      uint
	ResolvedRarity string
}

// DrawRecordRepository 抽取记录数据访问接口
type DrawRecordRepository interface {
	Create(record *models.DrawRecord) (bool, error)
	List(filter DrawRecordListFilter) ([]models.DrawRecord, int64, error)
}

// GormDrawRecordRepository GORM 实现
type GormDrawRecordRepository struct {
	db *gorm.DB
}

// NewDrawRecordRepository 创建抽取记录仓库
func NewDrawRecordRepository(db *gorm.DB) *GormDrawRecordRepository {
	return &GormDrawRecordRepository{db: db}
}

// Create 写入抽取记录；同一背包条目重复写入时忽略并返回 false（任务重试幂等）
func (r *GormDrawRecordRepository) Create(record *models.DrawRecord) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "backpack_item_id"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 抽取记录列表
func (r *GormDrawRecordRepository) List(filter DrawRecordListFilter) ([]models.DrawRecord, int64, error) {
	query := r.db.Model(&models.DrawRecord{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if rarity := strings.TrimSpace(filter.ResolvedRarity); rarity != "" {
		query = query.Where("resolved_rarity = ?", rarity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.DrawRecord
	if err := applyPagination(query, filter.Page, filter.PageSize).Order("id DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// applyPagination pageSize <= 0 表示返回全部
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

package repository

import (
	"errors"
	"fmt"

	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品与库存数据访问接口
type ProductRepository interface {
	List() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	DecrementStock(productID uint, tier blindbox.Tier) (int64, error)
	AdjustStock(productID uint, tier blindbox.Tier, delta int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	})
}

// List 商品列表（含款式）
func (r *GormProductRepository) List() ([]models.Product, error) {
	var products []models.Product
	if err := preloadItems(r.db).Order("sort_order DESC, id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := preloadItems(r.db).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品（含款式）
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := preloadItems(r.db).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DecrementStock 有库存时扣减 1 件，返回受影响行数（0 表示该档已无库存或商品不存在）
func (r *GormProductRepository) DecrementStock(productID uint, tier blindbox.Tier) (int64, error) {
	column, err := stockColumn(tier)
	if err != nil {
		return 0, err
	}
	if productID == 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Product{}).
		Where(fmt.Sprintf("id = ? AND %s > 0", column), productID).
		UpdateColumn(column, gorm.Expr(column+" - 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// AdjustStock 管理端调整库存，结果小于 0 时按 0 处理
func (r *GormProductRepository) AdjustStock(productID uint, tier blindbox.Tier, delta int) (int64, error) {
	column, err := stockColumn(tier)
	if err != nil {
		return 0, err
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update(column, gorm.Expr(clampedAddExpr(r.db, column), delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func stockColumn(tier blindbox.Tier) (string, error) {
	switch tier {
	case blindbox.Common:
		return "stock_common", nil
	case blindbox.Rare:
		return "stock_rare", nil
	case blindbox.Secret:
		return "stock_secret", nil
	default:
		return "", blindbox.ErrTierInvalid
	}
}

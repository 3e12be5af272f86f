package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/cache"
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/models"
	"github.com/blindbox-next/internal/repository"
)

// ProductView 商品展示结构（含库存汇总）
type ProductView struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	PriceAmount models.Money         `json:"price_amount"`
	Image       string               `json:"img"`
	Items       []models.ProductItem `json:"items"`
	Stock       map[string]int       `json:"stock"`
	TotalStock  int                  `json:"total_stock"`
}

func newProductView(product models.Product) ProductView {
	items := product.Items
	if items == nil {
		items = []models.ProductItem{}
	}
	return ProductView{
		ID:          product.ID,
		Name:        product.Name,
		PriceAmount: product.PriceAmount,
		Image:       product.Image,
		Items:       items,
		Stock:       product.Stocks(),
		TotalStock:  product.TotalStock(),
	}
}

// InventoryService 商品与库存服务
type InventoryService struct {
	productRepo repository.ProductRepository
	cacheTTL    time.Duration
}

// NewInventoryService 创建库存服务，cacheTTL <= 0 时不缓存商品列表
func NewInventoryService(productRepo repository.ProductRepository, cacheTTL time.Duration) *InventoryService {
	return &InventoryService{productRepo: productRepo, cacheTTL: cacheTTL}
}

// ListProducts 商品列表（含款式与各档库存），Redis 启用时短时缓存
func (s *InventoryService) ListProducts(ctx context.Context) ([]ProductView, error) {
	return cache.Remember(ctx, constants.CacheKeyPublicProducts, s.cacheTTL, func() ([]ProductView, error) {
		products, err := s.productRepo.List()
		if err != nil {
			return nil, storeError(err)
		}
		views := make([]ProductView, 0, len(products))
		for _, product := range products {
			views = append(views, newProductView(product))
		}
		return views, nil
	})
}

// AdjustStock 管理端调整某档库存，结果按 0 截断
func (s *InventoryService) AdjustStock(ctx context.Context, productID uint, rarity string, delta int) (*ProductView, error) {
	tier, err := blindbox.ParseTier(rarity)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, storeError(err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}

	affected, err := s.productRepo.AdjustStock(productID, tier, delta)
	if err != nil {
		return nil, storeError(err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}
	s.invalidate(ctx)

	updated, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, storeError(err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}
	view := newProductView(*updated)
	logger.Infow("inventory_stock_adjusted",
		"product_id", productID,
		"rarity", tier.String(),
		"delta", delta,
		"stock", view.Stock[tier.String()],
	)
	return &view, nil
}

// InvalidateProducts 清除商品列表缓存（库存变动后调用）
func (s *InventoryService) InvalidateProducts(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *InventoryService) invalidate(ctx context.Context) {
	if s == nil || s.cacheTTL <= 0 {
		return
	}
	if err := cache.Del(ctx, constants.CacheKeyPublicProducts); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "error", err)
	}
}

// productStockLedger 以商品表库存列实现 blindbox.StockLedger
type productStockLedger struct {
	repo repository.ProductRepository
}

// TakeOne 有库存时扣减 1 件
func (l productStockLedger) TakeOne(productID uint, tier blindbox.Tier) (bool, error) {
	affected, err := l.repo.DecrementStock(productID, tier)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// catalogItems 将商品款式转换为抽取引擎使用的结构
func catalogItems(product *models.Product) []blindbox.Item {
	items := make([]blindbox.Item, 0, len(product.Items))
	for _, item := range product.Items {
		tier, err := blindbox.ParseTier(item.Rarity)
		if err != nil {
			logger.Errorw("catalog_item_rarity_invalid",
				"product_id", product.ID,
				"item_code", item.Code,
				"rarity", item.Rarity,
			)
			continue
		}
		items = append(items, blindbox.Item{Code: item.Code, Name: item.Name, Tier: tier})
	}
	return items
}

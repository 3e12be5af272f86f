package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/logger"
	"github.com/blindbox-next/internal/models"
	"github.com/blindbox-next/internal/queue"
	"github.com/blindbox-next/internal/repository"

	"gorm.io/gorm"
)

const defaultMaxCheckoutQuantity = 100

// BackpackService 下单入背包与开盒服务
type BackpackService struct {
	backpackRepo  repository.BackpackRepository
	productRepo   repository.ProductRepository
	probabilities *ProbabilityService
	inventory     *InventoryService
	drawRecords   *DrawRecordService
	queueClient   *queue.Client
	engine        *blindbox.Engine
	maxQuantity   int
}

// BackpackServiceOptions 背包服务依赖
type BackpackServiceOptions struct {
	BackpackRepo        repository.BackpackRepository
	ProductRepo         repository.ProductRepository
	Probabilities       *ProbabilityService
	Inventory           *InventoryService
	DrawRecords         *DrawRecordService
	QueueClient         *queue.Client
	Engine              *blindbox.Engine
	MaxCheckoutQuantity int
}

// NewBackpackService 创建背包服务
func NewBackpackService(opts BackpackServiceOptions) *BackpackService {
	engine := opts.Engine
	if engine == nil {
		engine = blindbox.NewEngine(nil)
	}
	maxQuantity := opts.MaxCheckoutQuantity
	if maxQuantity <= 0 {
		maxQuantity = defaultMaxCheckoutQuantity
	}
	return &BackpackService{
		backpackRepo:  opts.BackpackRepo,
		productRepo:   opts.ProductRepo,
		probabilities: opts.Probabilities,
		inventory:     opts.Inventory,
		drawRecords:   opts.DrawRecords,
		queueClient:   opts.QueueClient,
		engine:        engine,
		maxQuantity:   maxQuantity,
	}
}

// CheckoutItem 下单项
type CheckoutItem struct {
	ProductID uint
	Quantity  int
}

// OpenResult 开盒结果
type OpenResult struct {
	Item        *models.BackpackItem
	Rolled      blindbox.Tier
	Resolved    blindbox.Tier
	Decremented bool
}

// Checkout 每盒独立抽取款式并批量写入背包；不校验也不扣减库存
func (s *BackpackService) Checkout(items []CheckoutItem) (int, error) {
	if len(items) == 0 {
		return 0, ErrCheckoutItemsEmpty
	}
	normalized := make([]CheckoutItem, 0, len(items))
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 || quantity > s.maxQuantity {
			return 0, fmt.Errorf("%w: %d", ErrCheckoutQuantityInvalid, item.Quantity)
		}
		normalized = append(normalized, CheckoutItem{ProductID: item.ProductID, Quantity: quantity})
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return 0, storeError(err)
	}
	productMap := make(map[uint]*models.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}
	for _, id := range ids {
		if _, ok := productMap[id]; !ok {
			return 0, fmt.Errorf("%w: %d", ErrProductNotFound, id)
		}
	}

	weights := s.probabilities.Get()
	entries := make([]models.BackpackItem, 0)
	for _, item := range normalized {
		product := productMap[item.ProductID]
		pool := catalogItems(product)
		for i := 0; i < item.Quantity; i++ {
			tier := s.engine.RollTier(weights)
			picked, err := s.engine.RollItem(pool, tier)
			if err != nil {
				logger.Errorw("checkout_roll_item_failed",
					"product_id", product.ID,
					"tier", tier.String(),
					"error", err,
				)
				return 0, err
			}
			entries = append(entries, models.BackpackItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				ItemCode:    picked.Code,
				ItemName:    picked.Name,
				Rarity:      picked.Tier.String(),
				Status:      constants.BackpackStatusUnopened,
			})
		}
	}

	if err := s.backpackRepo.CreateBatch(entries); err != nil {
		return 0, storeError(err)
	}
	logger.Infow("checkout_items_added", "count", len(entries), "products", len(ids))
	return len(entries), nil
}

// ListAll 背包全部条目
func (s *BackpackService) ListAll() ([]models.BackpackItem, error) {
	items, err := s.backpackRepo.ListAll()
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

// Open 开盒：在同一事务内认领条目、重新抽取稀有度并按库存对账
func (s *BackpackService) Open(ctx context.Context, id uint) (*OpenResult, error) {
	item, err := s.backpackRepo.GetByID(id)
	if err != nil {
		return nil, storeError(err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %d", ErrBackpackItemNotFound, id)
	}
	if item.Status == constants.BackpackStatusOpened {
		return nil, ErrBackpackItemOpened
	}

	weights := s.probabilities.Get()
	openedAt := time.Now()
	var rolled blindbox.Tier
	var allocation blindbox.Allocation
	err = s.backpackRepo.Transaction(func(tx *gorm.DB) error {
		backpackRepo := s.backpackRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		affected, err := backpackRepo.MarkOpened(id, openedAt)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrBackpackItemOpened
		}
		product, err := productRepo.GetByID(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: %d", ErrProductNotFound, item.ProductID)
		}

		rolled = s.engine.RollTier(weights)
		allocation, err = blindbox.NewResolver(productStockLedger{repo: productRepo}).Resolve(product.ID, rolled)
		if err != nil {
			return err
		}
		return backpackRepo.SetOpenedRarity(id, allocation.Resolved.String())
	})
	if err != nil {
		return nil, storeError(err)
	}

	item.Status = constants.BackpackStatusOpened
	item.OpenedRarity = allocation.Resolved.String()
	item.OpenedAt = &openedAt
	logger.Infow("backpack_open_resolved",
		"backpack_item_id", id,
		"product_id", item.ProductID,
		"rolled", rolled.String(),
		"resolved", allocation.Resolved.String(),
		"decremented", allocation.Decremented,
	)

	if allocation.Decremented && s.inventory != nil {
		s.inventory.InvalidateProducts(ctx)
	}
	s.publishOpened(ctx, queue.BackpackOpenedPayload{
		BackpackItemID:   id,
		ProductID:        item.ProductID,
		RolledRarity:     rolled.String(),
		ResolvedRarity:   allocation.Resolved.String(),
		StockDecremented: allocation.Decremented,
		OpenedAt:         openedAt,
	})

	return &OpenResult{
		Item:        item,
		Rolled:      rolled,
		Resolved:    allocation.Resolved,
		Decremented: allocation.Decremented,
	}, nil
}

// publishOpened 投递审计任务；队列未启用或投递失败时同步写入，失败只记录日志
func (s *BackpackService) publishOpened(ctx context.Context, payload queue.BackpackOpenedPayload) {
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueBackpackOpened(context.WithoutCancel(ctx), payload)
		if err == nil {
			return
		}
		logger.Warnw("backpack_enqueue_opened_failed",
			"backpack_item_id", payload.BackpackItemID,
			"error", err,
		)
	}
	if s.drawRecords == nil {
		return
	}
	if err := s.drawRecords.Record(payload, constants.DrawRecordSourceSync); err != nil {
		logger.Warnw("draw_record_sync_write_failed",
			"backpack_item_id", payload.BackpackItemID,
			"error", err,
		)
	}
}

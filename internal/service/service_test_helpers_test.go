package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/models"
	"github.com/blindbox-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db            *gorm.DB
	products      repository.ProductRepository
	backpack      repository.BackpackRepository
	settings      repository.SettingRepository
	drawRecords   repository.DrawRecordRepository
	probabilities *ProbabilityService
	inventory     *InventoryService
	records       *DrawRecordService
	backpackSvc   *BackpackService
}

func newServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	env := &serviceTestEnv{
		db:          db,
		products:    repository.NewProductRepository(db),
		backpack:    repository.NewBackpackRepository(db),
		settings:    repository.NewSettingRepository(db),
		drawRecords: repository.NewDrawRecordRepository(db),
	}
	env.probabilities = NewProbabilityService(env.settings, blindbox.DefaultWeights())
	env.inventory = NewInventoryService(env.products, 0)
	env.records = NewDrawRecordService(env.drawRecords)
	env.backpackSvc = NewBackpackService(BackpackServiceOptions{
		BackpackRepo:        env.backpack,
		ProductRepo:         env.products,
		Probabilities:       env.probabilities,
		Inventory:           env.inventory,
		DrawRecords:         env.records,
		Engine:              blindbox.NewEngine(blindbox.NewSeededSource(42)),
		MaxCheckoutQuantity: 100,
	})
	return env
}

func (e *serviceTestEnv) createProduct(t *testing.T, id uint, common, rare, secret int) {
	t.Helper()
	product := &models.Product{
		ID:          id,
		Name:        fmt.Sprintf("series-%d", id),
		PriceAmount: models.NewMoneyFromFloat(999),
		StockCommon: common,
		StockRare:   rare,
		StockSecret: secret,
		Items: []models.ProductItem{
			{Code: fmt.Sprintf("P%d-S", id), Name: "secret", Rarity: constants.RaritySecret},
			{Code: fmt.Sprintf("P%d-R", id), Name: "rare", Rarity: constants.RarityRare, SortOrder: 1},
			{Code: fmt.Sprintf("P%d-C1", id), Name: "common a", Rarity: constants.RarityCommon, SortOrder: 2},
			{Code: fmt.Sprintf("P%d-C2", id), Name: "common b", Rarity: constants.RarityCommon, SortOrder: 3},
		},
	}
	if err := e.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
}

func (e *serviceTestEnv) stock(t *testing.T, id uint) models.Product {
	t.Helper()
	var product models.Product
	if err := e.db.First(&product, id).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product
}

func (e *serviceTestEnv) checkoutIDs(t *testing.T, productID uint, quantity int) []uint {
	t.Helper()
	if _, err := e.backpackSvc.Checkout([]CheckoutItem{{ProductID: productID, Quantity: quantity}}); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	items, err := e.backpackSvc.ListAll()
	if err != nil {
		t.Fatalf("list backpack failed: %v", err)
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.Status == constants.BackpackStatusUnopened {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

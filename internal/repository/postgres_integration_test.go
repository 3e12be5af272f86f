//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.DrawRecord{},
		&models.BackpackItem{},
		&models.ProductItem{},
		&models.Product{},
		&models.Setting{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresAdjustStockClamp(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	product := createTestProduct(t, db, 1, 5, 0, 0)
	repo := NewProductRepository(db)

	if _, err := repo.AdjustStock(product.ID, blindbox.Common, -8); err != nil {
		t.Fatalf("adjust stock failed: %v", err)
	}
	if got := reloadProduct(t, db, product.ID); got.StockCommon != 0 {
		t.Fatalf("common stock should clamp at 0, got %d", got.StockCommon)
	}
	if _, err := repo.AdjustStock(product.ID, blindbox.Common, 3); err != nil {
		t.Fatalf("adjust stock failed: %v", err)
	}
	if got := reloadProduct(t, db, product.ID); got.StockCommon != 3 {
		t.Fatalf("common stock want 3 got %d", got.StockCommon)
	}
}

func TestPostgresConcurrentDecrementAndClaim(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	product := createTestProduct(t, db, 1, 0, 4, 0)
	products := NewProductRepository(db)
	backpack := NewBackpackRepository(db)

	if err := backpack.CreateBatch([]models.BackpackItem{{
		ProductID: product.ID,
		ItemCode:  "C-1",
		Rarity:    constants.RarityCommon,
		Status:    constants.BackpackStatusUnopened,
	}}); err != nil {
		t.Fatalf("create backpack item failed: %v", err)
	}
	items, err := backpack.ListAll()
	if err != nil || len(items) != 1 {
		t.Fatalf("list backpack failed: %v", err)
	}

	var wg sync.WaitGroup
	var decremented, claimed int64
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			affected, err := products.DecrementStock(product.ID, blindbox.Rare)
			if err != nil {
				t.Errorf("decrement failed: %v", err)
				return
			}
			atomic.AddInt64(&decremented, affected)
			affected, err = backpack.MarkOpened(items[0].ID, time.Now())
			if err != nil {
				t.Errorf("mark opened failed: %v", err)
				return
			}
			atomic.AddInt64(&claimed, affected)
		}()
	}
	wg.Wait()

	if decremented != 4 {
		t.Fatalf("decrements want 4 got %d", decremented)
	}
	if claimed != 1 {
		t.Fatalf("claims want 1 got %d", claimed)
	}
	if got := reloadProduct(t, db, product.ID); got.StockRare != 0 {
		t.Fatalf("rare stock want 0 got %d", got.StockRare)
	}
}

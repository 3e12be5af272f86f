package models

import (
	"github.com/blindbox-next/internal/constants"
	"github.com/blindbox-next/internal/logger"

	"gorm.io/gorm"
)

// DefaultCatalog 默认盲盒系列目录
func DefaultCatalog() []Product {
	series := []struct {
		id     uint
		name   string
		image  string
		prefix string
		items  [5]string
	}{
		{1, "SKULLPANDA The Sound Series", "img/product1.jpg", "SKP", [5]string{"DJ SKULLPANDA", "ROCKER SKULLPANDA", "SINGER SKULLPANDA", "DRUMMER SKULLPANDA", "BASSIST SKULLPANDA"}},
		{2, "SKULLPANDA You Found Me!! Series", "img/product2.jpg", "YFM", [5]string{"GOLDEN ANGEL", "RED DEVIL", "BLUE SPIRIT", "GREEN FAIRY", "PURPLE WITCH"}},
		{3, "SKULLPANDA L'Impressionnisme Series", "img/product3.jpg", "IMP", [5]string{"STARRY NIGHT PANDA", "WATER LILY PANDA", "SUNFLOWER PANDA", "CAFE NIGHT PANDA", "WHEAT FIELD PANDA"}},
	}
	// 每个系列：1 款隐藏、2 款稀有、2 款普通
	rarities := [5]string{
		constants.RaritySecret,
		constants.RarityRare,
		constants.RarityRare,
		constants.RarityCommon,
		constants.RarityCommon,
	}

	products := make([]Product, 0, len(series))
	for _, s := range series {
		items := make([]ProductItem, 0, len(s.items))
		for i, name := range s.items {
			items = append(items, ProductItem{
				Code:      s.prefix + "-00" + string(rune('1'+i)),
				Name:      name,
				Rarity:    rarities[i],
				SortOrder: i,
			})
		}
		products = append(products, Product{
			ID:          s.id,
			Name:        s.name,
			PriceAmount: NewMoneyFromFloat(999),
			Image:       s.image,
			StockCommon: 20,
			StockRare:   10,
			StockSecret: 2,
			Items:       items,
		})
	}
	return products
}

// SeedCatalog 目录为空时写入默认系列，返回写入数量
func SeedCatalog(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Debugw("seed_catalog_skip_not_empty", "products", count)
		return 0, nil
	}
	catalog := DefaultCatalog()
	if err := db.Transaction(func(tx *gorm.DB) error {
		for i := range catalog {
			if err := tx.Create(&catalog[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return 0, err
	}
	logger.Infow("seed_catalog_created", "products", len(catalog))
	return len(catalog), nil
}

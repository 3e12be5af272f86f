package models

import (
	"time"

	"github.com/blindbox-next/internal/constants"
)

// Product 盲盒系列商品表
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                      // 主键（系列编号）
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`                    // 系列名称
	PriceAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 单盒价格
	Image       string    `gorm:"type:varchar(500)" json:"img"`                              // 封面图片路径
	StockCommon int       `gorm:"not null;default:0" json:"-"`                               // 普通款库存
	StockRare   int       `gorm:"not null;default:0" json:"-"`                               // 稀有款库存
	StockSecret int       `gorm:"not null;default:0" json:"-"`                               // 隐藏款库存
	SortOrder   int       `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                // 更新时间

	// 关联
	Items []ProductItem `gorm:"foreignKey:ProductID" json:"items"` // 款式列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// Stocks 返回按稀有度分组的库存
func (p Product) Stocks() map[string]int {
	return map[string]int{
		constants.RarityCommon: p.StockCommon,
		constants.RarityRare:   p.StockRare,
		constants.RaritySecret: p.StockSecret,
	}
}

// TotalStock 三档库存合计
func (p Product) TotalStock() int {
	return p.StockCommon + p.StockRare + p.StockSecret
}

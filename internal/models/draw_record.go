package models

import "time"

// DrawRecord 开盒抽取审计记录
type DrawRecord struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                   // 主键
	BackpackItemID   uint      `gorm:"not null;uniqueIndex" json:"backpack_item_id"`           // 背包条目ID（每条目仅一条记录）
	ProductID        uint      `gorm:"not null;index" json:"product_id"`                       // 商品ID
	RolledRarity     string    `gorm:"type:varchar(20);not null" json:"rolled_rarity"`         // 按概率抽中的稀有度
	ResolvedRarity   string    `gorm:"type:varchar(20);not null;index" json:"resolved_rarity"` // 库存对账后的稀有度
	StockDecremented bool      `gorm:"not null;default:false" json:"stock_decremented"`        // 是否扣减了库存
	Source           string    `gorm:"type:varchar(20);not null" json:"source"`                // 写入来源 queue/sync
	OpenedAt         time.Time `gorm:"index" json:"opened_at"`                                 // 开盒时间
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                                // 创建时间
}

// TableName 指定表名
func (DrawRecord) TableName() string {
	return "draw_records"
}

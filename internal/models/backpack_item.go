package models

import "time"

// BackpackItem 背包条目表（每购买一盒生成一条）
type BackpackItem struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                                // 主键
	ProductID    uint       `gorm:"not null;index" json:"product_id"`                                    // 商品ID
	ProductName  string     `gorm:"type:varchar(255);not null" json:"product_name"`                      // 商品名称快照
	ItemCode     string     `gorm:"type:varchar(64);not null" json:"item_id"`                            // 下单时抽中的款式编号
	ItemName     string     `gorm:"type:varchar(255);not null" json:"item_name"`                         // 款式名称快照
	Rarity       string     `gorm:"type:varchar(20);not null" json:"rarity"`                             // 下单时抽中的稀有度
	Status       string     `gorm:"type:varchar(20);not null;default:'unopened';index" json:"status"`    // 状态 unopened/opened
	OpenedRarity string     `gorm:"type:varchar(20);not null;default:''" json:"opened_rarity,omitempty"` // 开盒时最终分配的稀有度
	OpenedAt     *time.Time `json:"opened_at,omitempty"`                                                 // 开盒时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                                             // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                                          // 更新时间
}

// TableName 指定表名
func (BackpackItem) TableName() string {
	return "backpack_items"
}

package models

// ProductItem 盲盒款式表（种子数据写入后不再修改）
type ProductItem struct {
	ID        uint   `gorm:"primarykey" json:"-"`                                                              // 主键
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_item_code,priority:1" json:"-"`                   // 商品ID
	Code      string `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_item_code,priority:2" json:"id"` // 款式编号（商品内唯一）
	Name      string `gorm:"type:varchar(255);not null" json:"name"`                                           // 款式名称
	Rarity    string `gorm:"type:varchar(20);not null;index" json:"type"`                                      // 稀有度 common/rare/secret
	SortOrder int    `gorm:"default:0" json:"-"`                                                               // 展示顺序
}

// TableName 指定表名
func (ProductItem) TableName() string {
	return "product_items"
}

package models

import (
	"time"
)

// ProductAttribute 商品属性表（整组替换语义，硬删除）
// name/type/unit 为赋值时从命中模板复制的快照，不随模板后续变更同步
type ProductAttribute struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                       // 主键
	ProductID uint      `gorm:"not null;index;uniqueIndex:idx_product_attribute_key" json:"product_id"`     // 商品ID
	Key       string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_attribute_key" json:"key"` // 属性键（同商品内唯一）
	NameJSON  JSON      `gorm:"type:json;not null" json:"name"`                                             // 多语言名称（模板快照）
	Type      string    `gorm:"type:varchar(20);not null;default:'text'" json:"type"`                       // 属性类型（模板快照）
	Value     string    `gorm:"type:text;not null" json:"value"`                                            // 属性值
	Unit      string    `gorm:"type:varchar(32)" json:"unit"`                                               // 单位（提交值优先于模板默认值）
	IsVariant bool      `gorm:"not null;default:false;index" json:"is_variant"`                             // 是否参与变体组合（模板快照）
	SortOrder int       `gorm:"default:0;index" json:"sort_order"`                                          // 排序权重（提交顺序）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                    // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                                 // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductAttribute) TableName() string {
	return "product_attributes"
}

package models

import (
	"time"
)

// ProductVariant 商品变体表
type ProductVariant struct {
	ID             uint        `gorm:"primarykey" json:"id"`                                      // 主键
	ProductID      uint        `gorm:"not null;index" json:"product_id"`                          // 商品ID
	SKU            string      `gorm:"type:varchar(64);not null;uniqueIndex" json:"sku"`          // SKU 编码（全局唯一）
	NameJSON       JSON        `gorm:"type:json" json:"name"`                                     // 多语言名称（可选）
	PriceAmount    Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 变体价格
	DiscountAmount *Money      `gorm:"type:decimal(20,2)" json:"discount_amount"`                 // 折扣价（可选，须低于价格）
	Quantity       int         `gorm:"not null;default:0" json:"quantity"`                        // 变体库存数量
	Images         StringArray `gorm:"type:json" json:"images"`                                   // 变体图片数组
	Weight         *float64    `gorm:"type:decimal(10,3)" json:"weight"`                          // 重量（可选）
	DimensionsJSON JSON        `gorm:"type:json" json:"dimensions"`                               // 尺寸（可选，长/宽/高）
	IsDefault      bool        `gorm:"not null;default:false;index" json:"is_default"`            // 是否默认变体（每商品至多一个）
	IsActive       bool        `gorm:"not null;default:true;index" json:"is_active"`              // 是否启用
	SortOrder      int         `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt      time.Time   `gorm:"index" json:"updated_at"`                                   // 更新时间

	Product    *Product                  `gorm:"foreignKey:ProductID" json:"product,omitempty"`    // 关联商品
	Attributes []ProductVariantAttribute `gorm:"foreignKey:VariantID" json:"attributes,omitempty"` // 变体属性组合
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

// AttributeMap 返回变体属性组合的 key -> value 映射
func (v *ProductVariant) AttributeMap() map[string]string {
	m := make(map[string]string, len(v.Attributes))
	for _, attr := range v.Attributes {
		m[attr.Key] = attr.Value
	}
	return m
}

// ProductVariantAttribute 变体属性表（记录变体对应的变体属性取值）
type ProductVariantAttribute struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                       // 主键
	VariantID uint      `gorm:"not null;index;uniqueIndex:idx_variant_attribute_key" json:"variant_id"`     // 变体ID
	Key       string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_variant_attribute_key" json:"key"` // 属性键
	NameJSON  JSON      `gorm:"type:json" json:"name"`                                                      // 多语言名称（商品属性快照）
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`                                    // 属性值
	SortOrder int       `gorm:"default:0;index" json:"sort_order"`                                          // 排序权重（组合内顺序）
	CreatedAt time.Time `json:"created_at"`                                                                 // 创建时间
}

// TableName 指定表名
func (ProductVariantAttribute) TableName() string {
	return "product_variant_attributes"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                      // 主键
	SellerID        uint           `gorm:"not null;index" json:"seller_id"`                           // 所属卖家ID
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	NameJSON        JSON           `gorm:"type:json;not null" json:"name"`                            // 多语言名称
	DescriptionJSON JSON           `gorm:"type:json" json:"description"`                              // 多语言描述
	PriceAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 基础价格
	Quantity        int            `gorm:"not null;default:0" json:"quantity"`                        // 基础库存数量
	Images          StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	Status          string         `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`   // 状态（draft/active/archived）
	HasVariants     bool           `gorm:"not null;default:false;index" json:"has_variants"`          // 是否存在变体（由变体存储维护）
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Seller     *Seller            `gorm:"foreignKey:SellerID" json:"seller,omitempty"`                           // 卖家信息
	Categories []Category         `gorm:"many2many:product_categories;" json:"categories,omitempty"`            // 所属分类
	Attributes []ProductAttribute `gorm:"foreignKey:ProductID" json:"attributes,omitempty"`                      // 属性列表
	Variants   []ProductVariant   `gorm:"foreignKey:ProductID" json:"variants,omitempty"`                        // 变体列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

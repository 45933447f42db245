package models

import (
	"time"
)

// CustomAttributeTemplate 卖家自定义属性模板表（仅作用于该卖家自己的商品）
// 删除为停用（is_active=false），历史商品属性引用的键保持可解释
type CustomAttributeTemplate struct {
	ID              uint        `gorm:"primarykey" json:"id"`                                                      // 主键
	SellerID        uint        `gorm:"not null;index;uniqueIndex:idx_seller_template_key" json:"seller_id"`       // 所属卖家ID
	Key             string      `gorm:"type:varchar(64);not null;uniqueIndex:idx_seller_template_key" json:"key"`  // 属性键（同卖家内唯一，由名称派生）
	NameJSON        JSON        `gorm:"type:json;not null" json:"name"`                                            // 多语言名称
	DescriptionJSON JSON        `gorm:"type:json" json:"description"`                                              // 多语言描述
	Type            string      `gorm:"type:varchar(20);not null;default:'text'" json:"type"`                      // 属性类型（text/number/select/...）
	Options         StringArray `gorm:"type:json" json:"options"`                                                  // 候选项（select/multi_select 必填）
	Unit            string      `gorm:"type:varchar(32)" json:"unit"`                                              // 默认单位
	IsRequired      bool        `gorm:"not null;default:false" json:"is_required"`                                 // 是否必填（仅用于前端提示）
	IsActive        bool        `gorm:"not null;default:true;index" json:"is_active"`                              // 是否启用（停用后不再参与校验）
	SortOrder       int         `gorm:"default:0;index" json:"sort_order"`                                         // 排序权重
	CreatedAt       time.Time   `gorm:"index" json:"created_at"`                                                   // 创建时间
	UpdatedAt       time.Time   `json:"updated_at"`                                                                // 更新时间

	Seller *Seller `gorm:"foreignKey:SellerID" json:"seller,omitempty"` // 所属卖家
}

// TableName 指定表名
func (CustomAttributeTemplate) TableName() string {
	return "custom_attribute_templates"
}

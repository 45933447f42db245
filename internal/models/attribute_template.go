package models

import (
	"time"
)

// AttributeTemplate 分类属性模板表（平台管理员维护，作用于分类下所有商品）
// 删除为硬删除；存量商品属性保留赋值时的快照，不受模板删除影响
type AttributeTemplate struct {
	ID              uint        `gorm:"primarykey" json:"id"`                                                        // 主键
	CategoryID      uint        `gorm:"not null;index;uniqueIndex:idx_category_template_key" json:"category_id"`     // 分类ID
	Key             string      `gorm:"type:varchar(64);not null;uniqueIndex:idx_category_template_key" json:"key"`  // 属性键（同分类内唯一，由名称派生）
	NameJSON        JSON        `gorm:"type:json;not null" json:"name"`                                              // 多语言名称
	DescriptionJSON JSON        `gorm:"type:json" json:"description"`                                                // 多语言描述
	Type            string      `gorm:"type:varchar(20);not null;default:'text'" json:"type"`                        // 属性类型（text/number/select/...）
	Options         StringArray `gorm:"type:json" json:"options"`                                                    // 候选项（select/multi_select 必填）
	Unit            string      `gorm:"type:varchar(32)" json:"unit"`                                                // 默认单位（如 cm、kg）
	IsRequired      bool        `gorm:"not null;default:false" json:"is_required"`                                   // 是否必填（仅用于前端提示）
	IsVariant       bool        `gorm:"not null;default:false;index" json:"is_variant"`                              // 是否参与变体组合
	SortOrder       int         `gorm:"default:0;index" json:"sort_order"`                                           // 排序权重
	CreatedAt       time.Time   `gorm:"index" json:"created_at"`                                                     // 创建时间
	UpdatedAt       time.Time   `json:"updated_at"`                                                                  // 更新时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 所属分类
}

// TableName 指定表名
func (AttributeTemplate) TableName() string {
	return "attribute_templates"
}

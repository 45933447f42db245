package repository

import (
	"errors"

	"github.com/skumatrix/internal/models"

	"gorm.io/gorm"
)

// AttributeTemplateRepository 分类属性模板数据访问接口
type AttributeTemplateRepository interface {
	ListByCategory(filter AttributeTemplateListFilter) ([]models.AttributeTemplate, error)
	ListByCategoryIDs(categoryIDs []uint) ([]models.AttributeTemplate, error)
	GetByID(id uint) (*models.AttributeTemplate, error)
	GetByCategoryAndKey(categoryID uint, key string) (*models.AttributeTemplate, error)
	Create(template *models.AttributeTemplate) error
	Update(template *models.AttributeTemplate) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) AttributeTemplateRepository
}

// GormAttributeTemplateRepository GORM 实现
type GormAttributeTemplateRepository struct {
	db *gorm.DB
}

// NewAttributeTemplateRepository 创建分类属性模板仓库
func NewAttributeTemplateRepository(db *gorm.DB) *GormAttributeTemplateRepository {
	return &GormAttributeTemplateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAttributeTemplateRepository) WithTx(tx *gorm.DB) AttributeTemplateRepository {
	if tx == nil {
		return r
	}
	return &GormAttributeTemplateRepository{db: tx}
}

// ListByCategory 根据分类获取模板列表
func (r *GormAttributeTemplateRepository) ListByCategory(filter AttributeTemplateListFilter) ([]models.AttributeTemplate, error) {
	if filter.CategoryID == 0 {
		return nil, errors.New("invalid category id")
	}
	query := r.db.Model(&models.AttributeTemplate{}).Where("category_id = ?", filter.CategoryID)
	if filter.OnlyVariant {
		query = query.Where("is_variant = ?", true)
	}
	var templates []models.AttributeTemplate
	if err := query.Order("sort_order ASC, id ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// ListByCategoryIDs 批量按分类获取模板列表
func (r *GormAttributeTemplateRepository) ListByCategoryIDs(categoryIDs []uint) ([]models.AttributeTemplate, error) {
	if len(categoryIDs) == 0 {
		return []models.AttributeTemplate{}, nil
	}
	var templates []models.AttributeTemplate
	if err := r.db.Where("category_id IN ?", categoryIDs).
		Order("sort_order ASC, id ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// GetByID 根据 ID 获取模板
func (r *GormAttributeTemplateRepository) GetByID(id uint) (*models.AttributeTemplate, error) {
	if id == 0 {
		return nil, errors.New("invalid template id")
	}
	var template models.AttributeTemplate
	if err := r.db.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// GetByCategoryAndKey 按分类和属性键获取模板
func (r *GormAttributeTemplateRepository) GetByCategoryAndKey(categoryID uint, key string) (*models.AttributeTemplate, error) {
	if categoryID == 0 || key == "" {
		return nil, errors.New("invalid template query params")
	}
	var template models.AttributeTemplate
	if err := r.db.Where("category_id = ? AND key = ?", categoryID, key).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// Create 创建模板
func (r *GormAttributeTemplateRepository) Create(template *models.AttributeTemplate) error {
	if template == nil {
		return errors.New("template is nil")
	}
	return r.db.Create(template).Error
}

// Update 更新模板
func (r *GormAttributeTemplateRepository) Update(template *models.AttributeTemplate) error {
	if template == nil {
		return errors.New("template is nil")
	}
	return r.db.Save(template).Error
}

// Delete 删除模板（硬删除，存量商品属性快照保持不变）
func (r *GormAttributeTemplateRepository) Delete(id uint) error {
	if id == 0 {
		return errors.New("invalid template id")
	}
	return r.db.Delete(&models.AttributeTemplate{}, id).Error
}

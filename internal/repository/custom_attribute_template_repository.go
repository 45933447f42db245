package repository

import (
	"errors"
	"strings"

	"github.com/skumatrix/internal/models"

	"gorm.io/gorm"
)

// CustomAttributeTemplateRepository 卖家自定义属性模板数据访问接口
type CustomAttributeTemplateRepository interface {
	List(filter CustomAttributeTemplateListFilter) ([]models.CustomAttributeTemplate, int64, error)
	ListActiveBySeller(sellerID uint) ([]models.CustomAttributeTemplate, error)
	GetByID(id uint) (*models.CustomAttributeTemplate, error)
	GetBySellerAndKey(sellerID uint, key string) (*models.CustomAttributeTemplate, error)
	Create(template *models.CustomAttributeTemplate) error
	Update(template *models.CustomAttributeTemplate) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) CustomAttributeTemplateRepository
}

// GormCustomAttributeTemplateRepository GORM 实现
type GormCustomAttributeTemplateRepository struct {
	db *gorm.DB
}

// NewCustomAttributeTemplateRepository 创建卖家自定义属性模板仓库
func NewCustomAttributeTemplateRepository(db *gorm.DB) *GormCustomAttributeTemplateRepository {
	return &GormCustomAttributeTemplateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomAttributeTemplateRepository) WithTx(tx *gorm.DB) CustomAttributeTemplateRepository {
	if tx == nil {
		return r
	}
	return &GormCustomAttributeTemplateRepository{db: tx}
}

// List 分页查询卖家自定义模板
func (r *GormCustomAttributeTemplateRepository) List(filter CustomAttributeTemplateListFilter) ([]models.CustomAttributeTemplate, int64, error) {
	if filter.SellerID == 0 {
		return nil, 0, errors.New("invalid seller id")
	}
	query := r.db.Model(&models.CustomAttributeTemplate{}).Where("seller_id = ?", filter.SellerID)
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLocalizedLikeCondition(r.db, []string{"key"}, []string{"name_json"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var templates []models.CustomAttributeTemplate
	if err := query.Order("sort_order ASC, id ASC").Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// ListActiveBySeller 获取卖家启用中的自定义模板
func (r *GormCustomAttributeTemplateRepository) ListActiveBySeller(sellerID uint) ([]models.CustomAttributeTemplate, error) {
	if sellerID == 0 {
		return nil, errors.New("invalid seller id")
	}
	var templates []models.CustomAttributeTemplate
	if err := r.db.Where("seller_id = ? AND is_active = ?", sellerID, true).
		Order("sort_order ASC, id ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// GetByID 根据 ID 获取模板
func (r *GormCustomAttributeTemplateRepository) GetByID(id uint) (*models.CustomAttributeTemplate, error) {
	if id == 0 {
		return nil, errors.New("invalid template id")
	}
	var template models.CustomAttributeTemplate
	if err := r.db.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// GetBySellerAndKey 按卖家和属性键获取模板
func (r *GormCustomAttributeTemplateRepository) GetBySellerAndKey(sellerID uint, key string) (*models.CustomAttributeTemplate, error) {
	if sellerID == 0 || key == "" {
		return nil, errors.New("invalid template query params")
	}
	var template models.CustomAttributeTemplate
	if err := r.db.Where("seller_id = ? AND key = ?", sellerID, key).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// Create 创建模板
func (r *GormCustomAttributeTemplateRepository) Create(template *models.CustomAttributeTemplate) error {
	if template == nil {
		return errors.New("template is nil")
	}
	return r.db.Create(template).Error
}

// Update 更新模板
func (r *GormCustomAttributeTemplateRepository) Update(template *models.CustomAttributeTemplate) error {
	if template == nil {
		return errors.New("template is nil")
	}
	return r.db.Save(template).Error
}

// Delete 停用模板（is_active=false，历史商品属性引用的键保持可解释）
func (r *GormCustomAttributeTemplateRepository) Delete(id uint) error {
	if id == 0 {
		return errors.New("invalid template id")
	}
	return r.db.Model(&models.CustomAttributeTemplate{}).Where("id = ?", id).
		Update("is_active", false).Error
}

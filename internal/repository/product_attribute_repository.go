package repository

import (
	"errors"

	"github.com/skumatrix/internal/models"

	"gorm.io/gorm"
)

// ProductAttributeRepository 商品属性数据访问接口
type ProductAttributeRepository interface {
	ListByProduct(productID uint) ([]models.ProductAttribute, error)
	ListVariantByProduct(productID uint) ([]models.ProductAttribute, error)
	CreateBatch(items []models.ProductAttribute) error
	DeleteByProduct(productID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductAttributeRepository
}

// GormProductAttributeRepository GORM 实现
type GormProductAttributeRepository struct {
	db *gorm.DB
}

// NewProductAttributeRepository 创建商品属性仓库
func NewProductAttributeRepository(db *gorm.DB) *GormProductAttributeRepository {
	return &GormProductAttributeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductAttributeRepository) WithTx(tx *gorm.DB) ProductAttributeRepository {
	if tx == nil {
		return r
	}
	return &GormProductAttributeRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductAttributeRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListByProduct 根据商品获取属性列表（按提交顺序）
func (r *GormProductAttributeRepository) ListByProduct(productID uint) ([]models.ProductAttribute, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	var items []models.ProductAttribute
	if err := r.db.Where("product_id = ?", productID).
		Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListVariantByProduct 根据商品获取参与变体组合的属性列表
func (r *GormProductAttributeRepository) ListVariantByProduct(productID uint) ([]models.ProductAttribute, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	var items []models.ProductAttribute
	if err := r.db.Where("product_id = ? AND is_variant = ?", productID, true).
		Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateBatch 批量创建属性
func (r *GormProductAttributeRepository) CreateBatch(items []models.ProductAttribute) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

// DeleteByProduct 删除指定商品下的全部属性（硬删除，整组替换）
func (r *GormProductAttributeRepository) DeleteByProduct(productID uint) error {
	if productID == 0 {
		return errors.New("invalid product id")
	}
	return r.db.Unscoped().Where("product_id = ?", productID).Delete(&models.ProductAttribute{}).Error
}

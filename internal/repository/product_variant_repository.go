package repository

import (
	"errors"
	"strings"

	"github.com/skumatrix/internal/models"

	"gorm.io/gorm"
)

// ProductVariantRepository 商品变体数据访问接口
type ProductVariantRepository interface {
	ListByProduct(productID uint, onlyActive bool) ([]models.ProductVariant, error)
	GetByID(id uint) (*models.ProductVariant, error)
	GetBySKU(sku string) (*models.ProductVariant, error)
	CountByProduct(productID uint) (int64, error)
	CountBySKU(sku string) (int64, error)
	Create(item *models.ProductVariant) error
	Update(item *models.ProductVariant) error
	Delete(id uint) error
	DeleteByProduct(productID uint) error
	ClearDefault(productID uint, excludeID uint) error
	SetDefault(variantID uint) error
	AdjustQuantity(variantID uint, delta int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductVariantRepository
}

// GormProductVariantRepository GORM 实现
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewProductVariantRepository 创建商品变体仓库
func NewProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductVariantRepository) WithTx(tx *gorm.DB) ProductVariantRepository {
	if tx == nil {
		return r
	}
	return &GormProductVariantRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductVariantRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListByProduct 根据商品获取变体列表
func (r *GormProductVariantRepository) ListByProduct(productID uint, onlyActive bool) ([]models.ProductVariant, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	query := r.db.Model(&models.ProductVariant{}).Where("product_id = ?", productID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var items []models.ProductVariant
	if err := query.Preload("Attributes", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Order("sort_order DESC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 根据 ID 获取变体
func (r *GormProductVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	if id == 0 {
		return nil, errors.New("invalid variant id")
	}
	var item models.ProductVariant
	if err := r.db.Preload("Attributes", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetBySKU 根据 SKU 编码获取变体
func (r *GormProductVariantRepository) GetBySKU(sku string) (*models.ProductVariant, error) {
	code := strings.TrimSpace(sku)
	if code == "" {
		return nil, errors.New("invalid sku")
	}
	var item models.ProductVariant
	if err := r.db.Where("sku = ?", code).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CountByProduct 统计商品下的变体数量
func (r *GormProductVariantRepository) CountByProduct(productID uint) (int64, error) {
	if productID == 0 {
		return 0, errors.New("invalid product id")
	}
	var count int64
	if err := r.db.Model(&models.ProductVariant{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySKU 统计 SKU 编码数量（生成前的预检）
func (r *GormProductVariantRepository) CountBySKU(sku string) (int64, error) {
	code := strings.TrimSpace(sku)
	if code == "" {
		return 0, errors.New("invalid sku")
	}
	var count int64
	if err := r.db.Model(&models.ProductVariant{}).Where("sku = ?", code).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建变体（连同属性组合）
func (r *GormProductVariantRepository) Create(item *models.ProductVariant) error {
	if item == nil {
		return errors.New("variant is nil")
	}
	return r.db.Create(item).Error
}

// Update 更新变体
func (r *GormProductVariantRepository) Update(item *models.ProductVariant) error {
	if item == nil {
		return errors.New("variant is nil")
	}
	return r.db.Save(item).Error
}

// Delete 删除变体及其属性组合
func (r *GormProductVariantRepository) Delete(id uint) error {
	if id == 0 {
		return errors.New("invalid variant id")
	}
	if err := r.db.Where("variant_id = ?", id).Delete(&models.ProductVariantAttribute{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.ProductVariant{}, id).Error
}

// DeleteByProduct 删除指定商品下的全部变体
func (r *GormProductVariantRepository) DeleteByProduct(productID uint) error {
	if productID == 0 {
		return errors.New("invalid product id")
	}
	if err := r.db.Where(
		"variant_id IN (SELECT id FROM product_variants WHERE product_id = ?)", productID,
	).Delete(&models.ProductVariantAttribute{}).Error; err != nil {
		return err
	}
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error
}

// ClearDefault 清除商品下其他变体的默认标记
func (r *GormProductVariantRepository) ClearDefault(productID uint, excludeID uint) error {
	if productID == 0 {
		return errors.New("invalid product id")
	}
	query := r.db.Model(&models.ProductVariant{}).Where("product_id = ? AND is_default = ?", productID, true)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	return query.Update("is_default", false).Error
}

// SetDefault 设置变体为默认
func (r *GormProductVariantRepository) SetDefault(variantID uint) error {
	if variantID == 0 {
		return errors.New("invalid variant id")
	}
	return r.db.Model(&models.ProductVariant{}).Where("id = ?", variantID).
		Update("is_default", true).Error
}

// AdjustQuantity 原子增减变体库存（不允许减至负数）
func (r *GormProductVariantRepository) AdjustQuantity(variantID uint, delta int) (int64, error) {
	if variantID == 0 || delta == 0 {
		return 0, errors.New("invalid quantity adjust params")
	}
	query := r.db.Model(&models.ProductVariant{}).Where("id = ?", variantID)
	if delta < 0 {
		query = query.Where("quantity >= ?", -delta)
	}
	result := query.Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

package repository

import (
	"errors"

	"github.com/skumatrix/internal/models"

	"gorm.io/gorm"
)

// SellerRepository 卖家数据访问接口
type SellerRepository interface {
	GetByUsername(username string) (*models.Seller, error)
	GetByID(id uint) (*models.Seller, error)
	List() ([]models.Seller, error)
	Count() (int64, error)
	Create(seller *models.Seller) error
	Update(seller *models.Seller) error
	Delete(id uint) error
}

// GormSellerRepository GORM 实现
type GormSellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository 创建卖家仓库
func NewSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// GetByUsername 根据用户名获取卖家
func (r *GormSellerRepository) GetByUsername(username string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.Where("username = ?", username).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

// GetByID 根据 ID 获取卖家
func (r *GormSellerRepository) GetByID(id uint) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.First(&seller, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

// List 获取卖家列表
func (r *GormSellerRepository) List() ([]models.Seller, error) {
	sellers := make([]models.Seller, 0)
	err := r.db.
		Select("id", "username", "is_admin", "last_login_at", "created_at").
		Order("id ASC").
		Find(&sellers).Error
	if err != nil {
		return nil, err
	}
	return sellers, nil
}

// Count 统计卖家数量
func (r *GormSellerRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Seller{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建卖家
func (r *GormSellerRepository) Create(seller *models.Seller) error {
	return r.db.Create(seller).Error
}

// Update 更新卖家
func (r *GormSellerRepository) Update(seller *models.Seller) error {
	return r.db.Save(seller).Error
}

// Delete 删除卖家（软删除）
func (r *GormSellerRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Seller{}, id).Error
}

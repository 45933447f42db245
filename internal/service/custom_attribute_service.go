package service

import (
	"errors"

	"github.com/skumatrix/internal/models"
	"github.com/skumatrix/internal/repository"

	"gorm.io/gorm"
)

// CustomAttributeService 卖家自定义属性模板服务
type CustomAttributeService struct {
	repo repository.CustomAttributeTemplateRepository
}

// NewCustomAttributeService 创建卖家自定义属性模板服务
func NewCustomAttributeService(repo repository.CustomAttributeTemplateRepository) *CustomAttributeService {
	return &CustomAttributeService{repo: repo}
}

// List 分页获取卖家的自定义模板（仅启用中的）
func (s *CustomAttributeService) List(sellerID uint, search string, page, pageSize int) ([]models.CustomAttributeTemplate, int64, error) {
	return s.repo.List(repository.CustomAttributeTemplateListFilter{
		Page:       page,
		PageSize:   pageSize,
		SellerID:   sellerID,
		OnlyActive: true,
		Search:     search,
	})
}

// Get 获取卖家的单个自定义模板
func (s *CustomAttributeService) Get(sellerID, id uint) (*models.CustomAttributeTemplate, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil || !template.IsActive {
		return nil, ErrNotFound
	}
	if template.SellerID != sellerID {
		return nil, ErrForbidden
	}
	return template, nil
}

// Create 创建自定义模板（自定义属性不参与变体组合）
func (s *CustomAttributeService) Create(sellerID uint, def TemplateDefinition) (*models.CustomAttributeTemplate, error) {
	normalized, err := validateTemplateDefinition(def)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySellerAndKey(sellerID, normalized.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTemplateKeyExists
	}

	template := models.CustomAttributeTemplate{
		SellerID:        sellerID,
		Key:             normalized.Key,
		NameJSON:        models.JSON(def.NameJSON),
		DescriptionJSON: models.JSON(def.DescriptionJSON),
		Type:            normalized.Type,
		Options:         models.StringArray(normalized.Options),
		Unit:            def.Unit,
		IsRequired:      def.IsRequired,
		IsActive:        true,
		SortOrder:       def.SortOrder,
	}
	if err := s.repo.Create(&template); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTemplateKeyExists
		}
		return nil, err
	}
	return &template, nil
}

// Update 更新自定义模板
func (s *CustomAttributeService) Update(sellerID, id uint, def TemplateDefinition) (*models.CustomAttributeTemplate, error) {
	template, err := s.Get(sellerID, id)
	if err != nil {
		return nil, err
	}

	normalized, err := validateTemplateDefinition(def)
	if err != nil {
		return nil, err
	}

	if normalized.Key != template.Key {
		existing, err := s.repo.GetBySellerAndKey(sellerID, normalized.Key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrTemplateKeyExists
		}
	}

	template.Key = normalized.Key
	template.NameJSON = models.JSON(def.NameJSON)
	template.DescriptionJSON = models.JSON(def.DescriptionJSON)
	template.Type = normalized.Type
	template.Options = models.StringArray(normalized.Options)
	template.Unit = def.Unit
	template.IsRequired = def.IsRequired
	template.SortOrder = def.SortOrder

	if err := s.repo.Update(template); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTemplateKeyExists
		}
		return nil, err
	}
	return template, nil
}

// Delete 停用自定义模板（is_active=false，历史商品属性保持可解释）
func (s *CustomAttributeService) Delete(sellerID, id uint) error {
	if _, err := s.Get(sellerID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// ListActive 获取卖家启用中的自定义模板（属性校验用）
func (s *CustomAttributeService) ListActive(sellerID uint) ([]models.CustomAttributeTemplate, error) {
	return s.repo.ListActiveBySeller(sellerID)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/skumatrix/internal/cache"
	"github.com/skumatrix/internal/config"
	"github.com/skumatrix/internal/logger"
	"github.com/skumatrix/internal/models"
	"github.com/skumatrix/internal/repository"

	"gorm.io/gorm"
)

const defaultTemplateCacheTTL = 5 * time.Minute

// AttributeTemplateService 分类属性模板服务
type AttributeTemplateService struct {
	repo         repository.AttributeTemplateRepository
	categoryRepo repository.CategoryRepository
	cacheTTL     time.Duration
}

// NewAttributeTemplateService 创建分类属性模板服务
func NewAttributeTemplateService(repo repository.AttributeTemplateRepository, categoryRepo repository.CategoryRepository, cfg *config.Config) *AttributeTemplateService {
	ttl := defaultTemplateCacheTTL
	if cfg != nil && cfg.Attribute.CacheTTLSeconds > 0 {
		ttl = time.Duration(cfg.Attribute.CacheTTLSeconds) * time.Second
	}
	return &AttributeTemplateService{
		repo:         repo,
		categoryRepo: categoryRepo,
		cacheTTL:     ttl,
	}
}

// List 获取分类下的模板列表（sort_order 升序，经 Redis 读穿缓存）
func (s *AttributeTemplateService) List(ctx context.Context, categoryID uint) ([]models.AttributeTemplate, error) {
	if cached, hit, err := cache.GetCategoryTemplates(ctx, categoryID); err == nil && hit {
		return cached, nil
	}

	templates, err := s.repo.ListByCategory(repository.AttributeTemplateListFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	if err := cache.SetCategoryTemplates(ctx, categoryID, templates, s.cacheTTL); err != nil {
		logger.Warnw("template_cache_set_failed", "category_id", categoryID, "error", err)
	}
	return templates, nil
}

// ListByCategoryIDs 批量获取多个分类的模板（属性校验用，不走缓存）
func (s *AttributeTemplateService) ListByCategoryIDs(categoryIDs []uint) ([]models.AttributeTemplate, error) {
	return s.repo.ListByCategoryIDs(categoryIDs)
}

// Create 创建模板
func (s *AttributeTemplateService) Create(ctx context.Context, categoryID uint, def TemplateDefinition) (*models.AttributeTemplate, error) {
	category, err := s.categoryRepo.GetByID(formatUint(categoryID))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	normalized, err := validateTemplateDefinition(def)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCategoryAndKey(categoryID, normalized.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTemplateKeyExists
	}

	template := models.AttributeTemplate{
		CategoryID:      categoryID,
		Key:             normalized.Key,
		NameJSON:        models.JSON(def.NameJSON),
		DescriptionJSON: models.JSON(def.DescriptionJSON),
		Type:            normalized.Type,
		Options:         models.StringArray(normalized.Options),
		Unit:            def.Unit,
		IsRequired:      def.IsRequired,
		IsVariant:       def.IsVariant,
		SortOrder:       def.SortOrder,
	}
	if err := s.repo.Create(&template); err != nil {
		// 并发创建同键模板时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTemplateKeyExists
		}
		return nil, err
	}
	s.invalidate(ctx, categoryID)
	return &template, nil
}

// Update 更新模板（键随名称重新派生，类型变更时重新校验候选项）
func (s *AttributeTemplateService) Update(ctx context.Context, id uint, def TemplateDefinition) (*models.AttributeTemplate, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrNotFound
	}

	normalized, err := validateTemplateDefinition(def)
	if err != nil {
		return nil, err
	}

	if normalized.Key != template.Key {
		existing, err := s.repo.GetByCategoryAndKey(template.CategoryID, normalized.Key)
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
	template.IsVariant = def.IsVariant
	template.SortOrder = def.SortOrder

	if err := s.repo.Update(template); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTemplateKeyExists
		}
		return nil, err
	}
	s.invalidate(ctx, template.CategoryID)
	return template, nil
}

// Delete 删除模板（硬删除；存量商品属性保留赋值时的快照）
func (s *AttributeTemplateService) Delete(ctx context.Context, id uint) error {
	template, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if template == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, template.CategoryID)
	return nil
}

func (s *AttributeTemplateService) invalidate(ctx context.Context, categoryID uint) {
	if err := cache.DelCategoryTemplates(ctx, categoryID); err != nil {
		logger.Warnw("template_cache_invalidate_failed", "category_id", categoryID, "error", err)
	}
}

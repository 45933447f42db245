package service

import (
	"strings"

	"github.com/skumatrix/internal/constants"
	"github.com/skumatrix/internal/models"
	"github.com/skumatrix/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	attrRepo     repository.ProductAttributeRepository
	variantRepo  repository.ProductVariantRepository
}

// NewProductService 创建商品服务
func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	attrRepo repository.ProductAttributeRepository,
	variantRepo repository.ProductVariantRepository,
) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		attrRepo:     attrRepo,
		variantRepo:  variantRepo,
	}
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	Slug            string
	NameJSON        map[string]interface{}
	DescriptionJSON map[string]interface{}
	PriceAmount     decimal.Decimal
	Quantity        int
	Images          []string
	Status          string
	SortOrder       int
	CategoryIDs     []uint
}

// ProductListQuery 商品列表查询参数
type ProductListQuery struct {
	Page       int
	PageSize   int
	CategoryID string
	Status     string
	Search     string
	SortBy     string
}

// List 获取商品列表；非管理员只能看到自己的商品
func (s *ProductService) List(sellerID uint, isAdmin bool, query ProductListQuery) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:           query.Page,
		PageSize:       query.PageSize,
		CategoryID:     query.CategoryID,
		Status:         strings.TrimSpace(query.Status),
		Search:         query.Search,
		SortBy:         strings.TrimSpace(query.SortBy),
		WithCategories: true,
	}
	if !isAdmin {
		filter.SellerID = sellerID
	}
	return s.repo.List(filter)
}

// Get 获取商品详情（含分类）
func (s *ProductService) Get(id, sellerID uint, isAdmin bool) (*models.Product, error) {
	product, err := s.repo.GetWithCategories(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if !isAdmin && product.SellerID != sellerID {
		return nil, ErrForbidden
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(sellerID uint, input CreateProductInput) (*models.Product, error) {
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	if input.Quantity < 0 {
		return nil, ErrProductQuantityInvalid
	}
	status := normalizeProductStatus(input.Status)
	if status == "" {
		return nil, ErrProductStatusInvalid
	}

	count, err := s.repo.CountBySlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		SellerID:        sellerID,
		Slug:            input.Slug,
		NameJSON:        models.JSON(input.NameJSON),
		DescriptionJSON: models.JSON(input.DescriptionJSON),
		PriceAmount:     models.NewMoneyFromDecimal(priceAmount),
		Quantity:        input.Quantity,
		Images:          models.StringArray(input.Images),
		Status:          status,
		SortOrder:       input.SortOrder,
		Categories:      categories,
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return s.repo.GetWithCategories(product.ID)
}

// Update 更新商品；分类集合整组替换
func (s *ProductService) Update(id, sellerID uint, isAdmin bool, input CreateProductInput) (*models.Product, error) {
	product, err := s.Get(id, sellerID, isAdmin)
	if err != nil {
		return nil, err
	}

	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	if input.Quantity < 0 {
		return nil, ErrProductQuantityInvalid
	}
	status := normalizeProductStatus(input.Status)
	if status == "" {
		return nil, ErrProductStatusInvalid
	}

	count, err := s.repo.CountBySlug(input.Slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product.Slug = input.Slug
	product.NameJSON = models.JSON(input.NameJSON)
	product.DescriptionJSON = models.JSON(input.DescriptionJSON)
	product.PriceAmount = models.NewMoneyFromDecimal(priceAmount)
	product.Quantity = input.Quantity
	product.Images = models.StringArray(input.Images)
	product.Status = status
	product.SortOrder = input.SortOrder

	product.Categories = nil
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceCategories(product, categories); err != nil {
		return nil, err
	}
	return s.repo.GetWithCategories(id)
}

// Delete 删除商品，同一事务内级联删除其属性与全部变体
func (s *ProductService) Delete(id, sellerID uint, isAdmin bool) error {
	product, err := s.Get(id, sellerID, isAdmin)
	if err != nil {
		return err
	}
	return s.repo.Transaction(func(tx *gorm.DB) error {
		if err := s.attrRepo.WithTx(tx).DeleteByProduct(product.ID); err != nil {
			return err
		}
		if err := s.variantRepo.WithTx(tx).DeleteByProduct(product.ID); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(product.ID)
	})
}

// resolveCategories 校验分类 ID 均存在并返回分类实体
func (s *ProductService) resolveCategories(ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories, err := s.categoryRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(uniqueUintIDs(ids)) {
		return nil, ErrCategoryInvalid
	}
	return categories, nil
}

func uniqueUintIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func normalizeProductStatus(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", constants.ProductStatusDraft:
		return constants.ProductStatusDraft
	case constants.ProductStatusActive:
		return constants.ProductStatusActive
	case constants.ProductStatusArchived:
		return constants.ProductStatusArchived
	default:
		return ""
	}
}

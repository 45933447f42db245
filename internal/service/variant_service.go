package service

import (
	"errors"
	"strings"

	"github.com/skumatrix/internal/config"
	"github.com/skumatrix/internal/constants"
	"github.com/skumatrix/internal/logger"
	"github.com/skumatrix/internal/models"
	"github.com/skumatrix/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VariantService 商品变体存储服务
type VariantService struct {
	variantRepo     repository.ProductVariantRepository
	productRepo     repository.ProductRepository
	attrRepo        repository.ProductAttributeRepository
	maxCombinations int
	skuMaxAttempts  int
	skuBaseMaxLen   int
}

// NewVariantService 创建商品变体服务
func NewVariantService(
	variantRepo repository.ProductVariantRepository,
	productRepo repository.ProductRepository,
	attrRepo repository.ProductAttributeRepository,
	cfg *config.Config,
) *VariantService {
	maxCombinations := constants.VariantMaxCombinationsDefault
	skuMaxAttempts := constants.SKUMaxAttemptsDefault
	skuBaseMaxLen := constants.SKUBaseMaxLenDefault
	if cfg != nil {
		if cfg.Variant.MaxCombinations > 0 {
			maxCombinations = cfg.Variant.MaxCombinations
		}
		if cfg.Variant.SKUMaxAttempts > 0 {
			skuMaxAttempts = cfg.Variant.SKUMaxAttempts
		}
		if cfg.Variant.SKUBaseMaxLen > 0 {
			skuBaseMaxLen = cfg.Variant.SKUBaseMaxLen
		}
	}
	return &VariantService{
		variantRepo:     variantRepo,
		productRepo:     productRepo,
		attrRepo:        attrRepo,
		maxCombinations: maxCombinations,
		skuMaxAttempts:  skuMaxAttempts,
		skuBaseMaxLen:   skuBaseMaxLen,
	}
}

// VariantAttributeInput 变体属性组合的一个取值
type VariantAttributeInput struct {
	Key   string
	Value string
}

// CreateVariantInput 创建变体输入
type CreateVariantInput struct {
	NameJSON       map[string]interface{}
	PriceAmount    decimal.Decimal
	DiscountAmount *decimal.Decimal
	Quantity       int
	Images         []string
	Weight         *float64
	DimensionsJSON map[string]interface{}
	IsDefault      bool
	IsActive       *bool
	SortOrder      int
	Attributes     []VariantAttributeInput
}

// UpdateVariantInput 更新变体输入（nil 字段保持不变）
type UpdateVariantInput struct {
	NameJSON       map[string]interface{}
	PriceAmount    *decimal.Decimal
	DiscountAmount *decimal.Decimal
	ClearDiscount  bool
	Quantity       *int
	Images         []string
	Weight         *float64
	DimensionsJSON map[string]interface{}
	IsActive       *bool
	SortOrder      *int
	Attributes     []VariantAttributeInput
}

// CombinationError 批量生成中单个组合的失败记录
type CombinationError struct {
	Attributes map[string]string `json:"attributes"`
	Reason     string            `json:"reason"`
}

// GenerateResult 批量生成结果：部分成功是约定行为，调用方以 Created 为准
type GenerateResult struct {
	Created []models.ProductVariant `json:"created"`
	Failed  []CombinationError      `json:"failed"`
}

// List 获取商品的变体列表
func (s *VariantService) List(productID, sellerID uint, isAdmin bool) ([]models.ProductVariant, error) {
	if _, err := s.authorizeProduct(productID, sellerID, isAdmin); err != nil {
		return nil, err
	}
	return s.variantRepo.ListByProduct(productID, false)
}

// Get 获取单个变体
func (s *VariantService) Get(id, sellerID uint, isAdmin bool) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}
	if _, err := s.authorizeProduct(variant.ProductID, sellerID, isAdmin); err != nil {
		return nil, err
	}
	return variant, nil
}

// Create 创建单个变体：合成 SKU、落库变体及其属性组合、置位商品变体标记，
// 全部在一个事务内完成。商品的第一个变体自动成为默认变体。
func (s *VariantService) Create(productID, sellerID uint, isAdmin bool, input CreateVariantInput) (*models.ProductVariant, error) {
	product, err := s.authorizeProduct(productID, sellerID, isAdmin)
	if err != nil {
		return nil, err
	}

	price := input.PriceAmount.Round(2)
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrVariantPriceInvalid
	}
	if input.DiscountAmount != nil && input.DiscountAmount.Round(2).GreaterThanOrEqual(price) {
		return nil, ErrVariantDiscountInvalid
	}
	if input.Quantity < 0 {
		return nil, ErrVariantQuantityInvalid
	}

	combination := combinationFromInputs(input.Attributes)
	existing, err := s.variantRepo.ListByProduct(productID, false)
	if err != nil {
		return nil, err
	}
	if hasDuplicateCombination(existing, combination, 0) {
		return nil, ErrVariantAttributesDuplicate
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	isDefault := input.IsDefault
	if len(existing) == 0 {
		isDefault = true
	}

	variant := models.ProductVariant{
		ProductID:      productID,
		NameJSON:       models.JSON(input.NameJSON),
		PriceAmount:    models.NewMoneyFromDecimal(price),
		Quantity:       input.Quantity,
		Images:         models.StringArray(input.Images),
		Weight:         input.Weight,
		DimensionsJSON: models.JSON(input.DimensionsJSON),
		IsDefault:      isDefault,
		IsActive:       isActive,
		SortOrder:      input.SortOrder,
	}
	if input.DiscountAmount != nil {
		discount := models.NewMoneyFromDecimal(input.DiscountAmount.Round(2))
		variant.DiscountAmount = &discount
	}
	variant.Attributes = combinationRows(combination)

	if err := s.createWithUniqueSKU(product, &variant, combination); err != nil {
		return nil, err
	}
	return s.variantRepo.GetByID(variant.ID)
}

// Update 部分更新变体；提交 Attributes 时整组替换属性组合
func (s *VariantService) Update(id, sellerID uint, isAdmin bool, input UpdateVariantInput) (*models.ProductVariant, error) {
	variant, err := s.Get(id, sellerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if input.PriceAmount != nil {
		price := input.PriceAmount.Round(2)
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, ErrVariantPriceInvalid
		}
		variant.PriceAmount = models.NewMoneyFromDecimal(price)
	}
	if input.ClearDiscount {
		variant.DiscountAmount = nil
	} else if input.DiscountAmount != nil {
		discount := input.DiscountAmount.Round(2)
		if discount.GreaterThanOrEqual(variant.PriceAmount.Decimal) {
			return nil, ErrVariantDiscountInvalid
		}
		money := models.NewMoneyFromDecimal(discount)
		variant.DiscountAmount = &money
	}
	if variant.DiscountAmount != nil && variant.DiscountAmount.Decimal.GreaterThanOrEqual(variant.PriceAmount.Decimal) {
		return nil, ErrVariantDiscountInvalid
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, ErrVariantQuantityInvalid
		}
		variant.Quantity = *input.Quantity
	}
	if input.NameJSON != nil {
		variant.NameJSON = models.JSON(input.NameJSON)
	}
	if input.Images != nil {
		variant.Images = models.StringArray(input.Images)
	}
	if input.Weight != nil {
		variant.Weight = input.Weight
	}
	if input.DimensionsJSON != nil {
		variant.DimensionsJSON = models.JSON(input.DimensionsJSON)
	}
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		variant.SortOrder = *input.SortOrder
	}

	var replacement []models.ProductVariantAttribute
	if input.Attributes != nil {
		combination := combinationFromInputs(input.Attributes)
		existing, err := s.variantRepo.ListByProduct(variant.ProductID, false)
		if err != nil {
			return nil, err
		}
		if hasDuplicateCombination(existing, combination, variant.ID) {
			return nil, ErrVariantAttributesDuplicate
		}
		replacement = combinationRows(combination)
		for i := range replacement {
			replacement[i].VariantID = variant.ID
		}
	}

	err = s.variantRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.variantRepo.WithTx(tx)
		if input.Attributes != nil {
			if err := tx.Where("variant_id = ?", variant.ID).
				Delete(&models.ProductVariantAttribute{}).Error; err != nil {
				return err
			}
			if len(replacement) > 0 {
				if err := tx.Create(&replacement).Error; err != nil {
					return err
				}
			}
		}
		variant.Attributes = nil
		return txRepo.Update(variant)
	})
	if err != nil {
		return nil, err
	}
	return s.variantRepo.GetByID(variant.ID)
}

// Delete 删除变体（硬删除）。
// 即使删除的是最后一个变体也不回收商品的 has_variants 标记，留给维护任务处理。
func (s *VariantService) Delete(id, sellerID uint, isAdmin bool) error {
	variant, err := s.Get(id, sellerID, isAdmin)
	if err != nil {
		return err
	}
	return s.variantRepo.Delete(variant.ID)
}

// SetDefault 设置默认变体，同一事务内清除同商品其他变体的默认标记
func (s *VariantService) SetDefault(id, sellerID uint, isAdmin bool) (*models.ProductVariant, error) {
	variant, err := s.Get(id, sellerID, isAdmin)
	if err != nil {
		return nil, err
	}
	err = s.variantRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.variantRepo.WithTx(tx)
		if err := txRepo.ClearDefault(variant.ProductID, variant.ID); err != nil {
			return err
		}
		return txRepo.SetDefault(variant.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.variantRepo.GetByID(variant.ID)
}

// GenerateFromAttributes 读取商品的变体属性，按笛卡尔积批量生成变体。
// 每个组合独立成一个事务，单个组合失败记入 Failed 并继续，不回滚已生成的变体。
func (s *VariantService) GenerateFromAttributes(productID, sellerID uint, isAdmin bool) (*GenerateResult, error) {
	product, err := s.authorizeProduct(productID, sellerID, isAdmin)
	if err != nil {
		return nil, err
	}

	attributes, err := s.attrRepo.ListVariantByProduct(productID)
	if err != nil {
		return nil, err
	}
	combinations, err := GenerateCombinations(buildVariantPairs(attributes), s.maxCombinations)
	if err != nil {
		return nil, err
	}

	existing, err := s.variantRepo.ListByProduct(productID, false)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Created: make([]models.ProductVariant, 0, len(combinations)),
		Failed:  make([]CombinationError, 0),
	}
	hasDefault := false
	for _, v := range existing {
		if v.IsDefault {
			hasDefault = true
			break
		}
	}

	for i, combination := range combinations {
		if hasDuplicateCombination(existing, combination, 0) {
			result.Failed = append(result.Failed, CombinationError{
				Attributes: combinationMap(combination),
				Reason:     ErrVariantAttributesDuplicate.Error(),
			})
			continue
		}

		variant := models.ProductVariant{
			ProductID:   productID,
			PriceAmount: product.PriceAmount,
			Quantity:    product.Quantity,
			IsDefault:   !hasDefault && len(result.Created) == 0 && len(existing) == 0,
			IsActive:    true,
			SortOrder:   i,
			Attributes:  combinationRows(combination),
		}
		if err := s.createWithUniqueSKU(product, &variant, combination); err != nil {
			logger.Warnw("variant_generation_combination_failed",
				"product_id", productID,
				"attributes", combinationMap(combination),
				"error", err,
			)
			result.Failed = append(result.Failed, CombinationError{
				Attributes: combinationMap(combination),
				Reason:     err.Error(),
			})
			continue
		}
		created, err := s.variantRepo.GetByID(variant.ID)
		if err != nil || created == nil {
			result.Created = append(result.Created, variant)
			continue
		}
		result.Created = append(result.Created, *created)
		existing = append(existing, *created)
	}

	return result, nil
}

// createWithUniqueSKU 合成 SKU 并落库。
// 预检只是减少冲突的建议手段，权威保证来自唯一索引：
// 提交时命中 gorm.ErrDuplicatedKey 则换随机后缀重试，直到重试预算耗尽。
func (s *VariantService) createWithUniqueSKU(product *models.Product, variant *models.ProductVariant, combination Combination) error {
	base := SynthesizeSKU(displayName(product.NameJSON), combination, s.skuBaseMaxLen)

	candidate := base
	if count, err := s.variantRepo.CountBySKU(candidate); err == nil && count > 0 {
		candidate = base + "-" + randomSKUSuffix(constants.SKURandomSuffixLen)
	}

	for attempt := 0; attempt < s.skuMaxAttempts; attempt++ {
		variant.SKU = candidate
		err := s.variantRepo.Transaction(func(tx *gorm.DB) error {
			txVariants := s.variantRepo.WithTx(tx)
			if variant.IsDefault {
				if err := txVariants.ClearDefault(variant.ProductID, 0); err != nil {
					return err
				}
			}
			if err := txVariants.Create(variant); err != nil {
				return err
			}
			return s.productRepo.WithTx(tx).UpdateHasVariants(variant.ProductID, true)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		resetVariantForRetry(variant)
		candidate = base + "-" + randomSKUSuffix(constants.SKURandomSuffixLen)
	}
	return ErrSKUGenerationFailed
}

// resetVariantForRetry 清除失败写入时 gorm 回填的主键，避免重试时误走更新路径
func resetVariantForRetry(variant *models.ProductVariant) {
	variant.ID = 0
	for i := range variant.Attributes {
		variant.Attributes[i].ID = 0
		variant.Attributes[i].VariantID = 0
	}
}

func (s *VariantService) authorizeProduct(productID, sellerID uint, isAdmin bool) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
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

// combinationFromInputs 将提交的属性组合转为内部表示（去空白、去重键）
func combinationFromInputs(inputs []VariantAttributeInput) Combination {
	combination := make(Combination, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		key := strings.TrimSpace(input.Key)
		value := strings.TrimSpace(input.Value)
		if key == "" || value == "" {
			continue
		}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		combination = append(combination, AttributePair{Key: key, Value: value})
	}
	return combination
}

// combinationRows 将组合转为变体属性行，保持组合内顺序
func combinationRows(combination Combination) []models.ProductVariantAttribute {
	rows := make([]models.ProductVariantAttribute, 0, len(combination))
	for i, pair := range combination {
		rows = append(rows, models.ProductVariantAttribute{
			Key:       pair.Key,
			NameJSON:  models.JSON(pair.NameJSON),
			Value:     pair.Value,
			SortOrder: i,
		})
	}
	return rows
}

func combinationMap(combination Combination) map[string]string {
	m := make(map[string]string, len(combination))
	for _, pair := range combination {
		m[pair.Key] = pair.Value
	}
	return m
}

// hasDuplicateCombination 判断商品下是否已存在完全相同的属性组合
func hasDuplicateCombination(existing []models.ProductVariant, combination Combination, excludeID uint) bool {
	target := combinationMap(combination)
	for _, variant := range existing {
		if excludeID != 0 && variant.ID == excludeID {
			continue
		}
		current := variant.AttributeMap()
		if len(current) != len(target) {
			continue
		}
		match := true
		for key, value := range target {
			if current[key] != value {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

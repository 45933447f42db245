package service

import (
	"strings"

	"github.com/skumatrix/internal/models"
	"github.com/skumatrix/internal/repository"

	"gorm.io/gorm"
)

// ProductAttributeService 商品属性赋值服务（整组替换语义）
type ProductAttributeService struct {
	attrRepo           repository.ProductAttributeRepository
	productRepo        repository.ProductRepository
	templateRepo       repository.AttributeTemplateRepository
	customTemplateRepo repository.CustomAttributeTemplateRepository
}

// NewProductAttributeService 创建商品属性赋值服务
func NewProductAttributeService(
	attrRepo repository.ProductAttributeRepository,
	productRepo repository.ProductRepository,
	templateRepo repository.AttributeTemplateRepository,
	customTemplateRepo repository.CustomAttributeTemplateRepository,
) *ProductAttributeService {
	return &ProductAttributeService{
		attrRepo:           attrRepo,
		productRepo:        productRepo,
		templateRepo:       templateRepo,
		customTemplateRepo: customTemplateRepo,
	}
}

// AttributeInput 单条属性提交
type AttributeInput struct {
	Key   string
	Value string
	Unit  string
}

// List 获取商品属性列表
func (s *ProductAttributeService) List(productID, sellerID uint, isAdmin bool) ([]models.ProductAttribute, error) {
	if _, err := s.authorizeProduct(productID, sellerID, isAdmin); err != nil {
		return nil, err
	}
	return s.attrRepo.ListByProduct(productID)
}

// SetAttributes 校验并原子替换商品的属性集合。
// 可用模板为商品当前分类模板与卖家启用中自定义模板的并集；
// 校验全部通过后在一个事务内先删后插，重复提交等价于无操作。
func (s *ProductAttributeService) SetAttributes(productID, sellerID uint, isAdmin bool, inputs []AttributeInput) ([]models.ProductAttribute, error) {
	product, err := s.authorizeProduct(productID, sellerID, isAdmin)
	if err != nil {
		return nil, err
	}

	schemas, err := s.resolveSchemas(product)
	if err != nil {
		return nil, err
	}

	// 全量校验先行，任何一条失败都不落库
	rows := make([]models.ProductAttribute, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for i, input := range inputs {
		key := strings.TrimSpace(input.Key)
		if key == "" || strings.TrimSpace(input.Value) == "" {
			return nil, ErrAttributeValueEmpty
		}
		if _, exists := seen[key]; exists {
			return nil, ErrAttributeKeyInvalid
		}
		seen[key] = struct{}{}

		schema, ok := schemas[key]
		if !ok {
			return nil, ErrAttributeKeyInvalid
		}
		value, err := validateAttributeValue(schema, input.Value)
		if err != nil {
			return nil, err
		}

		unit := strings.TrimSpace(input.Unit)
		if unit == "" {
			unit = schema.Unit
		}

		rows = append(rows, models.ProductAttribute{
			ProductID: productID,
			Key:       key,
			NameJSON:  models.JSON(schema.NameJSON),
			Type:      schema.Type,
			Value:     value,
			Unit:      unit,
			IsVariant: schema.IsVariant,
			SortOrder: i,
		})
	}

	err = s.attrRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.attrRepo.WithTx(tx)
		if err := txRepo.DeleteByProduct(productID); err != nil {
			return err
		}
		return txRepo.CreateBatch(rows)
	})
	if err != nil {
		return nil, err
	}

	return s.attrRepo.ListByProduct(productID)
}

// resolveSchemas 汇总商品可用的模板集合（属性键 -> 模板快照）。
// 同键时分类模板优先于卖家自定义模板。
func (s *ProductAttributeService) resolveSchemas(product *models.Product) (map[string]attributeSchema, error) {
	categoryIDs := make([]uint, 0, len(product.Categories))
	for _, category := range product.Categories {
		categoryIDs = append(categoryIDs, category.ID)
	}

	templates, err := s.templateRepo.ListByCategoryIDs(categoryIDs)
	if err != nil {
		return nil, err
	}
	customTemplates, err := s.customTemplateRepo.ListActiveBySeller(product.SellerID)
	if err != nil {
		return nil, err
	}

	schemas := make(map[string]attributeSchema, len(templates)+len(customTemplates))
	for _, t := range customTemplates {
		schemas[t.Key] = attributeSchema{
			Key:       t.Key,
			NameJSON:  map[string]interface{}(t.NameJSON),
			Type:      t.Type,
			Options:   []string(t.Options),
			Unit:      t.Unit,
			IsVariant: false, // 自定义属性不参与变体组合
		}
	}
	for _, t := range templates {
		schemas[t.Key] = attributeSchema{
			Key:       t.Key,
			NameJSON:  map[string]interface{}(t.NameJSON),
			Type:      t.Type,
			Options:   []string(t.Options),
			Unit:      t.Unit,
			IsVariant: t.IsVariant,
		}
	}
	return schemas, nil
}

// authorizeProduct 加载商品并执行归属校验
func (s *ProductAttributeService) authorizeProduct(productID, sellerID uint, isAdmin bool) (*models.Product, error) {
	product, err := s.productRepo.GetWithCategories(productID)
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

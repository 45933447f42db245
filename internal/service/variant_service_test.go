package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/skumatrix/internal/constants"
	"github.com/skumatrix/internal/models"
	"github.com/skumatrix/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupVariantServiceTest(t *testing.T) (*VariantService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:variant_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Seller{},
		&models.Category{},
		&models.Product{},
		&models.ProductAttribute{},
		&models.ProductVariant{},
		&models.ProductVariantAttribute{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewVariantService(
		repository.NewProductVariantRepository(db),
		repository.NewProductRepository(db),
		repository.NewProductAttributeRepository(db),
		nil,
	)
	return svc, db
}

func seedVariantProduct(t *testing.T, db *gorm.DB, sellerID uint, slug string) models.Product {
	t.Helper()
	product := models.Product{
		SellerID:    sellerID,
		Slug:        slug,
		NameJSON:    models.JSON{"en-US": "Classic Tee"},
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("19.99")),
		Quantity:    100,
		Status:      constants.ProductStatusActive,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedVariantAttributes(t *testing.T, db *gorm.DB, productID uint) {
	t.Helper()
	attrs := []models.ProductAttribute{
		{
			ProductID: productID,
			Key:       "color",
			NameJSON:  models.JSON{"en-US": "Color"},
			Type:      constants.AttributeTypeMultiSelect,
			Value:     "Red,Blue",
			IsVariant: true,
			SortOrder: 0,
		},
		{
			ProductID: productID,
			Key:       "size",
			NameJSON:  models.JSON{"en-US": "Size"},
			Type:      constants.AttributeTypeMultiSelect,
			Value:     "S,M",
			IsVariant: true,
			SortOrder: 1,
		},
		{
			ProductID: productID,
			Key:       "material",
			NameJSON:  models.JSON{"en-US": "Material"},
			Type:      constants.AttributeTypeText,
			Value:     "Cotton",
			IsVariant: false,
			SortOrder: 2,
		},
	}
	if err := db.Create(&attrs).Error; err != nil {
		t.Fatalf("create attributes failed: %v", err)
	}
}

func TestVariantServiceCreate(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")

	price := decimal.RequireFromString("29.99")
	variant, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: price,
		Quantity:    5,
		Attributes: []VariantAttributeInput{
			{Key: "color", Value: "Red"},
			{Key: "size", Value: "M"},
		},
	})
	if err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	if variant.SKU != "classic-te-colred-sizm" {
		t.Fatalf("sku want classic-te-colred-sizm got %s", variant.SKU)
	}
	// 第一个变体自动成为默认
	if !variant.IsDefault {
		t.Fatalf("first variant should be default")
	}
	if len(variant.Attributes) != 2 {
		t.Fatalf("variant attributes want 2 got %d", len(variant.Attributes))
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if !stored.HasVariants {
		t.Fatalf("has_variants should be set on first variant create")
	}
}

func TestVariantServiceCreateValidation(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")

	_, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.Zero,
	})
	if !errors.Is(err, ErrVariantPriceInvalid) {
		t.Fatalf("zero price want ErrVariantPriceInvalid got %v", err)
	}

	discount := decimal.RequireFromString("30.00")
	_, err = svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount:    decimal.RequireFromString("29.99"),
		DiscountAmount: &discount,
	})
	if !errors.Is(err, ErrVariantDiscountInvalid) {
		t.Fatalf("discount >= price want ErrVariantDiscountInvalid got %v", err)
	}

	_, err = svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Quantity:    -1,
	})
	if !errors.Is(err, ErrVariantQuantityInvalid) {
		t.Fatalf("negative quantity want ErrVariantQuantityInvalid got %v", err)
	}

	_, err = svc.Create(product.ID, 2, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("cross-seller create want ErrForbidden got %v", err)
	}
}

func TestVariantServiceCreateDuplicateCombination(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")

	input := CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Attributes: []VariantAttributeInput{
			{Key: "color", Value: "Red"},
			{Key: "size", Value: "M"},
		},
	}
	if _, err := svc.Create(product.ID, 1, false, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// 键顺序不同仍视为同一组合
	_, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("39.99"),
		Attributes: []VariantAttributeInput{
			{Key: "size", Value: "M"},
			{Key: "color", Value: "Red"},
		},
	})
	if !errors.Is(err, ErrVariantAttributesDuplicate) {
		t.Fatalf("duplicate combination want ErrVariantAttributesDuplicate got %v", err)
	}
}

func TestVariantServiceSKUCollisionGetsSuffix(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	// 两个同名商品生成相同的 SKU 候选
	first := seedVariantProduct(t, db, 1, "classic-tee")
	second := seedVariantProduct(t, db, 1, "classic-tee-v2")

	input := CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Attributes:  []VariantAttributeInput{{Key: "color", Value: "Red"}},
	}
	v1, err := svc.Create(first.ID, 1, false, input)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	v2, err := svc.Create(second.ID, 1, false, input)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if v1.SKU == v2.SKU {
		t.Fatalf("colliding base sku should get a random suffix, both got %s", v1.SKU)
	}
	if !strings.HasPrefix(v2.SKU, v1.SKU+"-") {
		t.Fatalf("suffixed sku should extend the base: %s vs %s", v1.SKU, v2.SKU)
	}
	if len(v2.SKU) != len(v1.SKU)+1+constants.SKURandomSuffixLen {
		t.Fatalf("suffix length mismatch: %s", v2.SKU)
	}
}

func TestVariantServiceUpdate(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")

	variant, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Quantity:    5,
		Attributes:  []VariantAttributeInput{{Key: "color", Value: "Red"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPrice := decimal.RequireFromString("25.00")
	discount := decimal.RequireFromString("20.00")
	quantity := 8
	updated, err := svc.Update(variant.ID, 1, false, UpdateVariantInput{
		PriceAmount:    &newPrice,
		DiscountAmount: &discount,
		Quantity:       &quantity,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PriceAmount.String() != "25.00" || updated.Quantity != 8 {
		t.Fatalf("partial update mismatch: %+v", updated)
	}
	if updated.DiscountAmount == nil || updated.DiscountAmount.String() != "20.00" {
		t.Fatalf("discount not applied: %+v", updated.DiscountAmount)
	}
	// 未提交的字段保持不变
	if len(updated.Attributes) != 1 || updated.Attributes[0].Value != "Red" {
		t.Fatalf("attributes should be untouched: %+v", updated.Attributes)
	}

	cleared, err := svc.Update(variant.ID, 1, false, UpdateVariantInput{ClearDiscount: true})
	if err != nil {
		t.Fatalf("clear discount failed: %v", err)
	}
	if cleared.DiscountAmount != nil {
		t.Fatalf("discount should be cleared")
	}
}

func TestVariantServiceUpdateReplacesAttributes(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")

	variant, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Attributes: []VariantAttributeInput{
			{Key: "color", Value: "Red"},
			{Key: "size", Value: "M"},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Attributes: []VariantAttributeInput{
			{Key: "color", Value: "Blue"},
			{Key: "size", Value: "M"},
		},
	}); err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	// 改成与另一个变体相同的组合被拒绝
	_, err = svc.Update(variant.ID, 1, false, UpdateVariantInput{
		Attributes: []VariantAttributeInput{
			{Key: "color", Value: "Blue"},
			{Key: "size", Value: "M"},
		},
	})
	if !errors.Is(err, ErrVariantAttributesDuplicate) {
		t.Fatalf("duplicate combination want ErrVariantAttributesDuplicate got %v", err)
	}

	updated, err := svc.Update(variant.ID, 1, false, UpdateVariantInput{
		Attributes: []VariantAttributeInput{
			{Key: "color", Value: "Green"},
		},
	})
	if err != nil {
		t.Fatalf("replace attributes failed: %v", err)
	}
	if len(updated.Attributes) != 1 || updated.Attributes[0].Value != "Green" {
		t.Fatalf("attributes should be replaced as a set: %+v", updated.Attributes)
	}
}

func TestVariantServiceDeleteKeepsHasVariants(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")

	variant, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Attributes:  []VariantAttributeInput{{Key: "color", Value: "Red"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(variant.ID, 1, false); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(variant.ID, 1, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete want ErrNotFound got %v", err)
	}

	// 变体属性行一并删除
	var attrCount int64
	if err := db.Model(&models.ProductVariantAttribute{}).
		Where("variant_id = ?", variant.ID).Count(&attrCount).Error; err != nil {
		t.Fatalf("count attributes failed: %v", err)
	}
	if attrCount != 0 {
		t.Fatalf("variant attributes should be deleted, got %d", attrCount)
	}

	// 删除最后一个变体也不回收标记
	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if !stored.HasVariants {
		t.Fatalf("has_variants must stay set after deleting the last variant")
	}
}

func TestVariantServiceSetDefault(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")

	first, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Attributes:  []VariantAttributeInput{{Key: "color", Value: "Red"}},
	})
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Attributes:  []VariantAttributeInput{{Key: "color", Value: "Blue"}},
	})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if second.IsDefault {
		t.Fatalf("second variant should not be default on create")
	}

	updated, err := svc.SetDefault(second.ID, 1, false)
	if err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	if !updated.IsDefault {
		t.Fatalf("set default should flag the variant")
	}

	var defaults int64
	if err := db.Model(&models.ProductVariant{}).
		Where("product_id = ? AND is_default = ?", product.ID, true).Count(&defaults).Error; err != nil {
		t.Fatalf("count defaults failed: %v", err)
	}
	if defaults != 1 {
		t.Fatalf("exactly one default expected, got %d", defaults)
	}
	reloaded, err := svc.Get(first.ID, 1, false)
	if err != nil {
		t.Fatalf("reload first failed: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatalf("previous default should be cleared")
	}
}

func TestVariantServiceCreateExplicitDefaultClearsOthers(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")

	if _, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		Attributes:  []VariantAttributeInput{{Key: "color", Value: "Red"}},
	}); err != nil {
		t.Fatalf("create first failed: %v", err)
	}

	second, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("29.99"),
		IsDefault:   true,
		Attributes:  []VariantAttributeInput{{Key: "color", Value: "Blue"}},
	})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if !second.IsDefault {
		t.Fatalf("explicit default should be honored")
	}

	var defaults int64
	if err := db.Model(&models.ProductVariant{}).
		Where("product_id = ? AND is_default = ?", product.ID, true).Count(&defaults).Error; err != nil {
		t.Fatalf("count defaults failed: %v", err)
	}
	if defaults != 1 {
		t.Fatalf("exactly one default expected, got %d", defaults)
	}
}

func TestVariantServiceGenerateFromAttributes(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")
	seedVariantAttributes(t, db, product.ID)

	result, err := svc.GenerateFromAttributes(product.ID, 1, false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(result.Created) != 4 || len(result.Failed) != 0 {
		t.Fatalf("want 4 created 0 failed, got %d/%d", len(result.Created), len(result.Failed))
	}

	// 组合顺序：维度按属性顺序，值按首次出现顺序
	first := result.Created[0]
	if first.AttributeMap()["color"] != "Red" || first.AttributeMap()["size"] != "S" {
		t.Fatalf("first combination mismatch: %v", first.AttributeMap())
	}
	if !first.IsDefault {
		t.Fatalf("first generated variant should be default when product had none")
	}
	for i, variant := range result.Created {
		if variant.SortOrder != i {
			t.Fatalf("sort_order should follow combination order, variant %d got %d", i, variant.SortOrder)
		}
		if variant.PriceAmount.String() != "19.99" || variant.Quantity != 100 {
			t.Fatalf("defaults should come from product: %+v", variant)
		}
		if i > 0 && variant.IsDefault {
			t.Fatalf("only the first generated variant may be default")
		}
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if !stored.HasVariants {
		t.Fatalf("has_variants should be set after generation")
	}
}

func TestVariantServiceGeneratePartialSuccess(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")
	seedVariantAttributes(t, db, product.ID)

	// 预先占用一个组合
	existing, err := svc.Create(product.ID, 1, false, CreateVariantInput{
		PriceAmount: decimal.RequireFromString("9.99"),
		Attributes: []VariantAttributeInput{
			{Key: "color", Value: "Red"},
			{Key: "size", Value: "S"},
		},
	})
	if err != nil {
		t.Fatalf("seed variant failed: %v", err)
	}

	result, err := svc.GenerateFromAttributes(product.ID, 1, false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(result.Created) != 3 {
		t.Fatalf("created want 3 got %d", len(result.Created))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed want 1 got %d", len(result.Failed))
	}
	failure := result.Failed[0]
	if failure.Attributes["color"] != "Red" || failure.Attributes["size"] != "S" {
		t.Fatalf("failed combination mismatch: %v", failure.Attributes)
	}
	if failure.Reason != ErrVariantAttributesDuplicate.Error() {
		t.Fatalf("failure reason mismatch: %s", failure.Reason)
	}
	// 已有默认变体时生成结果不再抢默认
	for _, variant := range result.Created {
		if variant.IsDefault {
			t.Fatalf("generated variant must not steal default from %d", existing.ID)
		}
	}

	// 重复生成等价于全部失败
	again, err := svc.GenerateFromAttributes(product.ID, 1, false)
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if len(again.Created) != 0 || len(again.Failed) != 4 {
		t.Fatalf("regenerate want 0 created 4 failed, got %d/%d", len(again.Created), len(again.Failed))
	}
}

func TestVariantServiceGenerateWithoutVariantAttributes(t *testing.T) {
	svc, db := setupVariantServiceTest(t)
	product := seedVariantProduct(t, db, 1, "classic-tee")

	if _, err := svc.GenerateFromAttributes(product.ID, 1, false); !errors.Is(err, ErrNoVariantAttributes) {
		t.Fatalf("no variant attributes want ErrNoVariantAttributes got %v", err)
	}
}

package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/skumatrix/internal/constants"
	"github.com/skumatrix/internal/models"
	"github.com/skumatrix/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:category_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Seller{},
		&models.Category{},
		&models.Product{},
		&models.AttributeTemplate{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryServiceCreateAndSlugConflict(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	category, err := svc.Create(CreateCategoryInput{
		Slug:     "apparel",
		NameJSON: map[string]interface{}{"zh-CN": "服饰", "en-US": "Apparel"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if category.ID == 0 || category.Slug != "apparel" {
		t.Fatalf("category fields mismatch: %+v", category)
	}

	if _, err := svc.Create(CreateCategoryInput{Slug: "apparel"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug want ErrSlugExists got %v", err)
	}
}

func TestCategoryServiceUpdate(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	if _, err := svc.Create(CreateCategoryInput{Slug: "apparel"}); err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create(CreateCategoryInput{Slug: "electronics"})
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	id := fmt.Sprintf("%d", second.ID)
	if _, err := svc.Update(id, CreateCategoryInput{Slug: "apparel"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("update onto taken slug want ErrSlugExists got %v", err)
	}
	updated, err := svc.Update(id, CreateCategoryInput{
		Slug:     "electronics",
		NameJSON: map[string]interface{}{"en-US": "Electronics"},
		Icon:     "/icons/e.png",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Icon != "/icons/e.png" {
		t.Fatalf("icon not updated: %+v", updated)
	}

	if _, err := svc.Update("999", CreateCategoryInput{Slug: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing category want ErrNotFound got %v", err)
	}
}

func TestCategoryServiceDeleteGuards(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	category, err := svc.Create(CreateCategoryInput{Slug: "apparel"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := fmt.Sprintf("%d", category.ID)

	// 被商品引用时拒绝删除
	product := models.Product{
		SellerID:    1,
		Slug:        "classic-tee",
		NameJSON:    models.JSON{"en-US": "Classic Tee"},
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("19.99")),
		Status:      constants.ProductStatusActive,
		Categories:  []models.Category{*category},
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if err := svc.Delete(id); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("category with products want ErrCategoryInUse got %v", err)
	}

	if err := db.Model(&product).Association("Categories").Clear(); err != nil {
		t.Fatalf("clear product categories failed: %v", err)
	}

	// 挂有模板时同样拒绝
	template := models.AttributeTemplate{
		CategoryID: category.ID,
		Key:        "color",
		NameJSON:   models.JSON{"en-US": "Color"},
		Type:       constants.AttributeTypeText,
	}
	if err := db.Create(&template).Error; err != nil {
		t.Fatalf("create template failed: %v", err)
	}
	if err := svc.Delete(id); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("category with templates want ErrCategoryInUse got %v", err)
	}

	if err := db.Delete(&template).Error; err != nil {
		t.Fatalf("delete template failed: %v", err)
	}
	if err := svc.Delete(id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete want ErrNotFound got %v", err)
	}
}

package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/skumatrix/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepoTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func seedRepoProduct(t *testing.T, repo *GormProductRepository, sellerID uint, slug, name string, categories ...models.Category) models.Product {
	t.Helper()
	product := models.Product{
		SellerID:    sellerID,
		Slug:        slug,
		NameJSON:    models.JSON{"zh-CN": name, "en-US": name},
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("19.99")),
		Status:      "active",
		Categories:  categories,
	}
	if err := repo.Create(&product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductRepositoryCountBySlug(t *testing.T) {
	repo, _ := setupProductRepoTest(t)
	product := seedRepoProduct(t, repo, 1, "classic-tee", "Classic Tee")

	count, err := repo.CountBySlug("classic-tee", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	count, err = repo.CountBySlug("classic-tee", &product.ID)
	if err != nil {
		t.Fatalf("count with exclude failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("excluding own id should count 0, got %d", count)
	}
}

func TestProductRepositoryListFilters(t *testing.T) {
	repo, db := setupProductRepoTest(t)
	category := models.Category{Slug: "apparel", NameJSON: models.JSON{"en-US": "Apparel"}}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	seedRepoProduct(t, repo, 1, "classic-tee", "经典T恤", category)
	seedRepoProduct(t, repo, 2, "ceramic-mug", "马克杯")

	// 卖家过滤
	products, total, err := repo.List(ProductListFilter{SellerID: 1})
	if err != nil {
		t.Fatalf("list by seller failed: %v", err)
	}
	if total != 1 || products[0].Slug != "classic-tee" {
		t.Fatalf("seller filter mismatch: total=%d %+v", total, products)
	}

	// 分类过滤
	products, total, err = repo.List(ProductListFilter{CategoryID: fmt.Sprintf("%d", category.ID)})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 1 || products[0].Slug != "classic-tee" {
		t.Fatalf("category filter mismatch: total=%d %+v", total, products)
	}

	// 多语言名称搜索
	products, total, err = repo.List(ProductListFilter{Search: "T恤"})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 || products[0].Slug != "classic-tee" {
		t.Fatalf("search should match localized name: total=%d %+v", total, products)
	}

	// slug 搜索
	_, total, err = repo.List(ProductListFilter{Search: "mug"})
	if err != nil {
		t.Fatalf("list by slug search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("slug search want 1 got %d", total)
	}
}

func TestProductRepositoryListSortByName(t *testing.T) {
	repo, _ := setupProductRepoTest(t)
	seedRepoProduct(t, repo, 1, "b-tee", "Bravo")
	seedRepoProduct(t, repo, 1, "a-tee", "Alpha")

	products, _, err := repo.List(ProductListFilter{SortBy: "name"})
	if err != nil {
		t.Fatalf("list sorted by name failed: %v", err)
	}
	if len(products) != 2 || products[0].Slug != "a-tee" {
		t.Fatalf("products should be ordered by localized name: %+v", products)
	}
}

func TestProductRepositoryListPagination(t *testing.T) {
	repo, _ := setupProductRepoTest(t)
	for i := 0; i < 5; i++ {
		seedRepoProduct(t, repo, 1, fmt.Sprintf("tee-%d", i), fmt.Sprintf("Tee %d", i))
	}

	products, total, err := repo.List(ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("total want 5 got %d", total)
	}
	if len(products) != 2 {
		t.Fatalf("page size want 2 got %d", len(products))
	}
}

func TestProductRepositoryReplaceCategories(t *testing.T) {
	repo, db := setupProductRepoTest(t)
	apparel := models.Category{Slug: "apparel", NameJSON: models.JSON{"en-US": "Apparel"}}
	electronics := models.Category{Slug: "electronics", NameJSON: models.JSON{"en-US": "Electronics"}}
	if err := db.Create(&apparel).Error; err != nil {
		t.Fatalf("create apparel failed: %v", err)
	}
	if err := db.Create(&electronics).Error; err != nil {
		t.Fatalf("create electronics failed: %v", err)
	}

	product := seedRepoProduct(t, repo, 1, "classic-tee", "Classic Tee", apparel)
	if err := repo.ReplaceCategories(&product, []models.Category{electronics}); err != nil {
		t.Fatalf("replace categories failed: %v", err)
	}

	stored, err := repo.GetWithCategories(product.ID)
	if err != nil {
		t.Fatalf("get with categories failed: %v", err)
	}
	if len(stored.Categories) != 1 || stored.Categories[0].ID != electronics.ID {
		t.Fatalf("categories should be replaced: %+v", stored.Categories)
	}
}

func TestProductRepositoryUpdateHasVariants(t *testing.T) {
	repo, _ := setupProductRepoTest(t)
	product := seedRepoProduct(t, repo, 1, "classic-tee", "Classic Tee")

	if err := repo.UpdateHasVariants(product.ID, true); err != nil {
		t.Fatalf("update has_variants failed: %v", err)
	}
	stored, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !stored.HasVariants {
		t.Fatalf("has_variants should be set")
	}
}

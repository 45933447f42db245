package main

import (
	"github.com/skumatrix/internal/config"
	"github.com/skumatrix/internal/constants"
	"github.com/skumatrix/internal/logger"
	"github.com/skumatrix/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultSeller("admin", "admin123"); err != nil {
		stdLog.Printf("Failed to init default seller: %v", err)
	}

	// 演示卖家
	demoSellerID := seedSeller(stdLog.Printf, "demo", "demo1234")

	// 分类
	categories := []models.Category{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "电子产品",
				"zh-TW": "電子產品",
				"en-US": "Electronics",
			}),
			Slug: "electronics",
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "服饰",
				"zh-TW": "服飾",
				"en-US": "Apparel",
			}),
			Slug: "apparel",
		},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	var apparel models.Category
	if err := models.DB.Where("slug = ?", "apparel").First(&apparel).Error; err != nil {
		stdLog.Fatalf("Failed to load apparel category: %v", err)
	}

	// 分类属性模板
	templates := []models.AttributeTemplate{
		{
			CategoryID: apparel.ID,
			Key:        "color",
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "颜色",
				"en-US": "Color",
			}),
			Type:      constants.AttributeTypeSelect,
			Options:   models.StringArray([]string{"Red", "Blue", "Black"}),
			IsVariant: true,
			SortOrder: 0,
		},
		{
			CategoryID: apparel.ID,
			Key:        "size",
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "尺码",
				"en-US": "Size",
			}),
			Type:      constants.AttributeTypeSelect,
			Options:   models.StringArray([]string{"S", "M", "L", "XL"}),
			IsVariant: true,
			SortOrder: 1,
		},
		{
			CategoryID: apparel.ID,
			Key:        "material",
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "材质",
				"en-US": "Material",
			}),
			Type:      constants.AttributeTypeText,
			SortOrder: 2,
		},
		{
			CategoryID: apparel.ID,
			Key:        "weight",
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "重量",
				"en-US": "Weight",
			}),
			Type:      constants.AttributeTypeNumber,
			Unit:      "g",
			SortOrder: 3,
		},
	}
	for _, tpl := range templates {
		var existing models.AttributeTemplate
		if err := models.DB.Where("category_id = ? AND key = ?", tpl.CategoryID, tpl.Key).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tpl).Error; err != nil {
				stdLog.Printf("Failed to create template %s: %v", tpl.Key, err)
			} else {
				stdLog.Printf("Created attribute template: %s", tpl.Key)
			}
		} else {
			stdLog.Printf("Attribute template already exists: %s", tpl.Key)
		}
	}

	// 卖家自定义模板
	if demoSellerID != 0 {
		custom := models.CustomAttributeTemplate{
			SellerID: demoSellerID,
			Key:      "warranty",
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "保修期",
				"en-US": "Warranty",
			}),
			Type:     constants.AttributeTypeText,
			IsActive: true,
		}
		var existing models.CustomAttributeTemplate
		if err := models.DB.Where("seller_id = ? AND key = ?", custom.SellerID, custom.Key).First(&existing).Error; err != nil {
			if err := models.DB.Create(&custom).Error; err != nil {
				stdLog.Printf("Failed to create custom template %s: %v", custom.Key, err)
			} else {
				stdLog.Printf("Created custom template: %s", custom.Key)
			}
		}
	}

	// 演示商品及属性
	if demoSellerID != 0 {
		var product models.Product
		if err := models.DB.Where("slug = ?", "classic-tee").First(&product).Error; err != nil {
			product = models.Product{
				SellerID: demoSellerID,
				Slug:     "classic-tee",
				NameJSON: models.JSON(map[string]interface{}{
					"zh-CN": "经典圆领T恤",
					"en-US": "Classic Tee",
				}),
				DescriptionJSON: models.JSON(map[string]interface{}{
					"zh-CN": "基础款纯棉T恤",
					"en-US": "Basic cotton tee",
				}),
				PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(19.99)),
				Quantity:    100,
				Status:      constants.ProductStatusActive,
				Categories:  []models.Category{apparel},
			}
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create demo product: %v", err)
			} else {
				stdLog.Printf("Created demo product: %s", product.Slug)
				attributes := []models.ProductAttribute{
					{
						ProductID: product.ID,
						Key:       "color",
						NameJSON:  models.JSON(map[string]interface{}{"zh-CN": "颜色", "en-US": "Color"}),
						Type:      constants.AttributeTypeSelect,
						Value:     "Red",
						IsVariant: true,
						SortOrder: 0,
					},
					{
						ProductID: product.ID,
						Key:       "size",
						NameJSON:  models.JSON(map[string]interface{}{"zh-CN": "尺码", "en-US": "Size"}),
						Type:      constants.AttributeTypeSelect,
						Value:     "M",
						IsVariant: true,
						SortOrder: 1,
					},
					{
						ProductID: product.ID,
						Key:       "material",
						NameJSON:  models.JSON(map[string]interface{}{"zh-CN": "材质", "en-US": "Material"}),
						Type:      constants.AttributeTypeText,
						Value:     "Cotton",
						SortOrder: 2,
					},
				}
				if err := models.DB.Create(&attributes).Error; err != nil {
					stdLog.Printf("Failed to create demo attributes: %v", err)
				}
			}
		} else {
			stdLog.Printf("Demo product already exists: %s", product.Slug)
		}
	}

	stdLog.Printf("Seed finished")
}

func seedSeller(printf func(string, ...interface{}), username, password string) uint {
	var existing models.Seller
	if err := models.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		printf("Seller already exists: %s", username)
		return existing.ID
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		printf("Failed to hash password for %s: %v", username, err)
		return 0
	}
	seller := models.Seller{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := models.DB.Create(&seller).Error; err != nil {
		printf("Failed to create seller %s: %v", username, err)
		return 0
	}
	printf("Created seller: %s", username)
	return seller.ID
}

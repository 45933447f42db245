package router

import (
	"fmt"
	"strings"

	"github.com/skumatrix/internal/cache"
	"github.com/skumatrix/internal/config"
	adminhandlers "github.com/skumatrix/internal/http/handlers/admin"
	sellerhandlers "github.com/skumatrix/internal/http/handlers/seller"
	"github.com/skumatrix/internal/logger"
	"github.com/skumatrix/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按卖家端/管理端分组）
	sellerHandler := sellerhandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sm"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), sellerHandler.Login)
		}

		// 卖家接口（需鉴权）
		seller := apiV1.Group("/seller")
		seller.Use(SellerJWTAuthMiddleware(cfg.JWT.SecretKey, c.SellerRepo))
		{
			seller.PUT("/password", sellerHandler.ChangePassword)

			// 自定义属性模板
			seller.GET("/attribute-templates", sellerHandler.GetCustomTemplates)
			seller.POST("/attribute-templates", sellerHandler.CreateCustomTemplate)
			seller.GET("/attribute-templates/:id", sellerHandler.GetCustomTemplate)
			seller.PUT("/attribute-templates/:id", sellerHandler.UpdateCustomTemplate)
			seller.DELETE("/attribute-templates/:id", sellerHandler.DeleteCustomTemplate)

			// 商品
			seller.GET("/products", sellerHandler.GetProducts)
			seller.POST("/products", sellerHandler.CreateProduct)
			seller.GET("/products/:id", sellerHandler.GetProduct)
			seller.PUT("/products/:id", sellerHandler.UpdateProduct)
			seller.DELETE("/products/:id", sellerHandler.DeleteProduct)

			// 商品属性（整组替换）
			seller.GET("/products/:id/attributes", sellerHandler.GetProductAttributes)
			seller.PUT("/products/:id/attributes", sellerHandler.SetProductAttributes)

			// 变体
			seller.GET("/products/:id/variants", sellerHandler.GetProductVariants)
			seller.POST("/products/:id/variants", sellerHandler.CreateVariant)
			seller.POST("/products/:id/variants/generate", sellerHandler.GenerateVariants)
			seller.GET("/variants/:id", sellerHandler.GetVariant)
			seller.PUT("/variants/:id", sellerHandler.UpdateVariant)
			seller.DELETE("/variants/:id", sellerHandler.DeleteVariant)
			seller.PUT("/variants/:id/default", sellerHandler.SetDefaultVariant)
		}

		// 管理员接口（分类与分类属性模板）
		admin := apiV1.Group("/admin")
		admin.Use(SellerJWTAuthMiddleware(cfg.JWT.SecretKey, c.SellerRepo), AdminOnlyMiddleware())
		{
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.GET("/categories/:id", adminHandler.GetAdminCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/categories/:id/attribute-templates", adminHandler.GetCategoryAttributeTemplates)
			admin.POST("/categories/:id/attribute-templates", adminHandler.CreateCategoryAttributeTemplate)
			admin.PUT("/attribute-templates/:id", adminHandler.UpdateAttributeTemplate)
			admin.DELETE("/attribute-templates/:id", adminHandler.DeleteAttributeTemplate)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

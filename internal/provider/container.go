package provider

import (
	"github.com/skumatrix/internal/cache"
	"github.com/skumatrix/internal/config"
	"github.com/skumatrix/internal/logger"
	"github.com/skumatrix/internal/models"
	"github.com/skumatrix/internal/queue"
	"github.com/skumatrix/internal/repository"
	"github.com/skumatrix/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	SellerRepo            repository.SellerRepository
	CategoryRepo          repository.CategoryRepository
	ProductRepo           repository.ProductRepository
	AttributeTemplateRepo repository.AttributeTemplateRepository
	CustomTemplateRepo    repository.CustomAttributeTemplateRepository
	ProductAttributeRepo  repository.ProductAttributeRepository
	ProductVariantRepo    repository.ProductVariantRepository

	// Services
	SellerAuthService        *service.SellerAuthService
	CategoryService          *service.CategoryService
	ProductService           *service.ProductService
	AttributeTemplateService *service.AttributeTemplateService
	CustomAttributeService   *service.CustomAttributeService
	ProductAttributeService  *service.ProductAttributeService
	VariantService           *service.VariantService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.SellerRepo = repository.NewSellerRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.AttributeTemplateRepo = repository.NewAttributeTemplateRepository(db)
	c.CustomTemplateRepo = repository.NewCustomAttributeTemplateRepository(db)
	c.ProductAttributeRepo = repository.NewProductAttributeRepository(db)
	c.ProductVariantRepo = repository.NewProductVariantRepository(db)
}

func (c *Container) initServices() {
	c.SellerAuthService = service.NewSellerAuthService(c.Config, c.SellerRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.ProductAttributeRepo, c.ProductVariantRepo)
	c.AttributeTemplateService = service.NewAttributeTemplateService(c.AttributeTemplateRepo, c.CategoryRepo, c.Config)
	c.CustomAttributeService = service.NewCustomAttributeService(c.CustomTemplateRepo)
	c.ProductAttributeService = service.NewProductAttributeService(c.ProductAttributeRepo, c.ProductRepo, c.AttributeTemplateRepo, c.CustomTemplateRepo)
	c.VariantService = service.NewVariantService(c.ProductVariantRepo, c.ProductRepo, c.ProductAttributeRepo, c.Config)
}

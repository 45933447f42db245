package seller

import (
	"strconv"

	handlershared "github.com/skumatrix/internal/http/handlers/shared"
	"github.com/skumatrix/internal/http/response"
	"github.com/skumatrix/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductUpsertRequest 商品创建/更新请求
type ProductUpsertRequest struct {
	Slug            string                 `json:"slug" binding:"required"`
	NameJSON        map[string]interface{} `json:"name" binding:"required"`
	DescriptionJSON map[string]interface{} `json:"description"`
	PriceAmount     decimal.Decimal        `json:"price_amount"`
	Quantity        int                    `json:"quantity"`
	Images          []string               `json:"images"`
	Status          string                 `json:"status"`
	SortOrder       int                    `json:"sort_order"`
	CategoryIDs     []uint                 `json:"category_ids"`
}

func (r ProductUpsertRequest) toInput() service.CreateProductInput {
	return service.CreateProductInput{
		Slug:            r.Slug,
		NameJSON:        r.NameJSON,
		DescriptionJSON: r.DescriptionJSON,
		PriceAmount:     r.PriceAmount,
		Quantity:        r.Quantity,
		Images:          r.Images,
		Status:          r.Status,
		SortOrder:       r.SortOrder,
		CategoryIDs:     r.CategoryIDs,
	}
}

// GetProducts 获取商品列表（非管理员只返回自己的商品）
func (h *Handler) GetProducts(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(sellerID, isAdmin(c), service.ProductListQuery{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: c.Query("category_id"),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.Get(id, sellerID, isAdmin(c))
	if err != nil {
		respondServiceError(c, err, "获取商品失败")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	product, err := h.ProductService.Create(sellerID, req.toInput())
	if err != nil {
		respondServiceError(c, err, "创建商品失败")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	product, err := h.ProductService.Update(id, sellerID, isAdmin(c), req.toInput())
	if err != nil {
		respondServiceError(c, err, "更新商品失败")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（级联删除其属性与变体）
func (h *Handler) DeleteProduct(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id, sellerID, isAdmin(c)); err != nil {
		respondServiceError(c, err, "删除商品失败")
		return
	}
	response.Success(c, nil)
}

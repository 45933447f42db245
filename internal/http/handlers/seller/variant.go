package seller

import (
	"github.com/skumatrix/internal/http/response"
	"github.com/skumatrix/internal/queue"
	"github.com/skumatrix/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// VariantAttributeItemRequest 变体属性组合中的一项
type VariantAttributeItemRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// VariantCreateRequest 创建变体请求
type VariantCreateRequest struct {
	NameJSON       map[string]interface{}        `json:"name"`
	PriceAmount    decimal.Decimal               `json:"price_amount"`
	DiscountAmount *decimal.Decimal              `json:"discount_amount"`
	Quantity       int                           `json:"quantity"`
	Images         []string                      `json:"images"`
	Weight         *float64                      `json:"weight"`
	DimensionsJSON map[string]interface{}        `json:"dimensions"`
	IsDefault      bool                          `json:"is_default"`
	IsActive       *bool                         `json:"is_active"`
	SortOrder      int                           `json:"sort_order"`
	Attributes     []VariantAttributeItemRequest `json:"attributes"`
}

// VariantUpdateRequest 更新变体请求（未提交的字段保持不变）
type VariantUpdateRequest struct {
	NameJSON       map[string]interface{}        `json:"name"`
	PriceAmount    *decimal.Decimal              `json:"price_amount"`
	DiscountAmount *decimal.Decimal              `json:"discount_amount"`
	ClearDiscount  bool                          `json:"clear_discount"`
	Quantity       *int                          `json:"quantity"`
	Images         []string                      `json:"images"`
	Weight         *float64                      `json:"weight"`
	DimensionsJSON map[string]interface{}        `json:"dimensions"`
	IsActive       *bool                         `json:"is_active"`
	SortOrder      *int                          `json:"sort_order"`
	Attributes     []VariantAttributeItemRequest `json:"attributes"`
}

// GenerateVariantsRequest 批量生成变体请求
type GenerateVariantsRequest struct {
	Async bool `json:"async"`
}

func toVariantAttributeInputs(items []VariantAttributeItemRequest) []service.VariantAttributeInput {
	inputs := make([]service.VariantAttributeInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.VariantAttributeInput{Key: item.Key, Value: item.Value})
	}
	return inputs
}

// GetProductVariants 获取商品变体列表
func (h *Handler) GetProductVariants(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	variants, err := h.VariantService.List(productID, sellerID, isAdmin(c))
	if err != nil {
		respondServiceError(c, err, "获取变体列表失败")
		return
	}
	response.Success(c, variants)
}

// GetVariant 获取变体详情
func (h *Handler) GetVariant(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	variant, err := h.VariantService.Get(id, sellerID, isAdmin(c))
	if err != nil {
		respondServiceError(c, err, "获取变体失败")
		return
	}
	response.Success(c, variant)
}

// CreateVariant 创建变体
func (h *Handler) CreateVariant(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req VariantCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	variant, err := h.VariantService.Create(productID, sellerID, isAdmin(c), service.CreateVariantInput{
		NameJSON:       req.NameJSON,
		PriceAmount:    req.PriceAmount,
		DiscountAmount: req.DiscountAmount,
		Quantity:       req.Quantity,
		Images:         req.Images,
		Weight:         req.Weight,
		DimensionsJSON: req.DimensionsJSON,
		IsDefault:      req.IsDefault,
		IsActive:       req.IsActive,
		SortOrder:      req.SortOrder,
		Attributes:     toVariantAttributeInputs(req.Attributes),
	})
	if err != nil {
		respondServiceError(c, err, "创建变体失败")
		return
	}
	response.Success(c, variant)
}

// UpdateVariant 更新变体
func (h *Handler) UpdateVariant(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req VariantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	input := service.UpdateVariantInput{
		NameJSON:       req.NameJSON,
		PriceAmount:    req.PriceAmount,
		DiscountAmount: req.DiscountAmount,
		ClearDiscount:  req.ClearDiscount,
		Quantity:       req.Quantity,
		Images:         req.Images,
		Weight:         req.Weight,
		DimensionsJSON: req.DimensionsJSON,
		IsActive:       req.IsActive,
		SortOrder:      req.SortOrder,
	}
	if req.Attributes != nil {
		input.Attributes = toVariantAttributeInputs(req.Attributes)
	}

	variant, err := h.VariantService.Update(id, sellerID, isAdmin(c), input)
	if err != nil {
		respondServiceError(c, err, "更新变体失败")
		return
	}
	response.Success(c, variant)
}

// DeleteVariant 删除变体
func (h *Handler) DeleteVariant(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.VariantService.Delete(id, sellerID, isAdmin(c)); err != nil {
		respondServiceError(c, err, "删除变体失败")
		return
	}
	response.Success(c, nil)
}

// SetDefaultVariant 设置默认变体
func (h *Handler) SetDefaultVariant(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	variant, err := h.VariantService.SetDefault(id, sellerID, isAdmin(c))
	if err != nil {
		respondServiceError(c, err, "设置默认变体失败")
		return
	}
	response.Success(c, variant)
}

// GenerateVariants 按商品属性批量生成变体。
// 请求 async=true 且队列可用时转入后台任务，立即返回受理结果。
func (h *Handler) GenerateVariants(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req GenerateVariantsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "请求参数不合法", err)
			return
		}
	}

	if req.Async && h.QueueClient.Enabled() {
		err := h.QueueClient.EnqueueVariantGenerate(queue.VariantGeneratePayload{
			ProductID: productID,
			SellerID:  sellerID,
			IsAdmin:   isAdmin(c),
		})
		if err != nil {
			respondError(c, response.CodeInternal, "提交生成任务失败", err)
			return
		}
		requestLog(c).Infow("variant_generate_enqueued", "product_id", productID)
		response.Success(c, gin.H{"queued": true})
		return
	}

	result, err := h.VariantService.GenerateFromAttributes(productID, sellerID, isAdmin(c))
	if err != nil {
		respondServiceError(c, err, "批量生成变体失败")
		return
	}
	response.Success(c, result)
}

package seller

import (
	"github.com/skumatrix/internal/http/response"
	"github.com/skumatrix/internal/service"

	"github.com/gin-gonic/gin"
)

// AttributeItemRequest 单条属性提交
type AttributeItemRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
	Unit  string `json:"unit"`
}

// SetAttributesRequest 整组替换商品属性请求
type SetAttributesRequest struct {
	Attributes []AttributeItemRequest `json:"attributes"`
}

// GetProductAttributes 获取商品属性列表
func (h *Handler) GetProductAttributes(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	attributes, err := h.ProductAttributeService.List(productID, sellerID, isAdmin(c))
	if err != nil {
		respondServiceError(c, err, "获取商品属性失败")
		return
	}
	response.Success(c, attributes)
}

// SetProductAttributes 整组替换商品属性（全部校验通过才落库）
func (h *Handler) SetProductAttributes(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req SetAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	inputs := make([]service.AttributeInput, 0, len(req.Attributes))
	for _, item := range req.Attributes {
		inputs = append(inputs, service.AttributeInput{
			Key:   item.Key,
			Value: item.Value,
			Unit:  item.Unit,
		})
	}

	attributes, err := h.ProductAttributeService.SetAttributes(productID, sellerID, isAdmin(c), inputs)
	if err != nil {
		respondServiceError(c, err, "保存商品属性失败")
		return
	}
	response.Success(c, attributes)
}

package seller

import (
	"strconv"

	handlershared "github.com/skumatrix/internal/http/handlers/shared"
	"github.com/skumatrix/internal/http/response"
	"github.com/skumatrix/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomTemplateUpsertRequest 卖家自定义属性模板创建/更新请求
type CustomTemplateUpsertRequest struct {
	NameJSON        map[string]interface{} `json:"name" binding:"required"`
	DescriptionJSON map[string]interface{} `json:"description"`
	Type            string                 `json:"type" binding:"required"`
	Options         []string               `json:"options"`
	Unit            string                 `json:"unit"`
	IsRequired      bool                   `json:"is_required"`
	SortOrder       int                    `json:"sort_order"`
}

func (r CustomTemplateUpsertRequest) toDefinition() service.TemplateDefinition {
	return service.TemplateDefinition{
		NameJSON:        r.NameJSON,
		DescriptionJSON: r.DescriptionJSON,
		Type:            r.Type,
		Options:         r.Options,
		Unit:            r.Unit,
		IsRequired:      r.IsRequired,
		SortOrder:       r.SortOrder,
	}
}

// GetCustomTemplates 获取当前卖家的自定义属性模板列表
func (h *Handler) GetCustomTemplates(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	templates, total, err := h.CustomAttributeService.List(sellerID, c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取自定义模板列表失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, templates, pagination)
}

// GetCustomTemplate 获取自定义属性模板详情
func (h *Handler) GetCustomTemplate(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	template, err := h.CustomAttributeService.Get(sellerID, id)
	if err != nil {
		respondServiceError(c, err, "获取自定义模板失败")
		return
	}
	response.Success(c, template)
}

// CreateCustomTemplate 创建自定义属性模板
func (h *Handler) CreateCustomTemplate(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req CustomTemplateUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	template, err := h.CustomAttributeService.Create(sellerID, req.toDefinition())
	if err != nil {
		respondServiceError(c, err, "创建自定义模板失败")
		return
	}
	response.Success(c, template)
}

// UpdateCustomTemplate 更新自定义属性模板
func (h *Handler) UpdateCustomTemplate(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req CustomTemplateUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	template, err := h.CustomAttributeService.Update(sellerID, id, req.toDefinition())
	if err != nil {
		respondServiceError(c, err, "更新自定义模板失败")
		return
	}
	response.Success(c, template)
}

// DeleteCustomTemplate 停用自定义属性模板（软停用，已有商品属性不受影响）
func (h *Handler) DeleteCustomTemplate(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.CustomAttributeService.Delete(sellerID, id); err != nil {
		respondServiceError(c, err, "停用自定义模板失败")
		return
	}
	response.Success(c, nil)
}

package admin

import (
	"strconv"

	"github.com/skumatrix/internal/http/response"
	"github.com/skumatrix/internal/service"

	"github.com/gin-gonic/gin"
)

// AttributeTemplateUpsertRequest 分类属性模板创建/更新请求
type AttributeTemplateUpsertRequest struct {
	NameJSON        map[string]interface{} `json:"name" binding:"required"`
	DescriptionJSON map[string]interface{} `json:"description"`
	Type            string                 `json:"type" binding:"required"`
	Options         []string               `json:"options"`
	Unit            string                 `json:"unit"`
	IsRequired      bool                   `json:"is_required"`
	IsVariant       bool                   `json:"is_variant"`
	SortOrder       int                    `json:"sort_order"`
}

func (r AttributeTemplateUpsertRequest) toDefinition() service.TemplateDefinition {
	return service.TemplateDefinition{
		NameJSON:        r.NameJSON,
		DescriptionJSON: r.DescriptionJSON,
		Type:            r.Type,
		Options:         r.Options,
		Unit:            r.Unit,
		IsRequired:      r.IsRequired,
		IsVariant:       r.IsVariant,
		SortOrder:       r.SortOrder,
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "路径参数不合法", err)
		return 0, false
	}
	return uint(value), true
}

// GetCategoryAttributeTemplates 获取分类的属性模板列表
func (h *Handler) GetCategoryAttributeTemplates(c *gin.Context) {
	categoryID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	templates, err := h.AttributeTemplateService.List(c.Request.Context(), categoryID)
	if err != nil {
		respondServiceError(c, err, "获取属性模板列表失败")
		return
	}
	response.Success(c, templates)
}

// CreateCategoryAttributeTemplate 在分类下创建属性模板
func (h *Handler) CreateCategoryAttributeTemplate(c *gin.Context) {
	categoryID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req AttributeTemplateUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	template, err := h.AttributeTemplateService.Create(c.Request.Context(), categoryID, req.toDefinition())
	if err != nil {
		respondServiceError(c, err, "创建属性模板失败")
		return
	}
	response.Success(c, template)
}

// UpdateAttributeTemplate 更新属性模板
func (h *Handler) UpdateAttributeTemplate(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req AttributeTemplateUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	template, err := h.AttributeTemplateService.Update(c.Request.Context(), id, req.toDefinition())
	if err != nil {
		respondServiceError(c, err, "更新属性模板失败")
		return
	}
	response.Success(c, template)
}

// DeleteAttributeTemplate 删除属性模板（硬删除，已写入商品的属性快照不受影响）
func (h *Handler) DeleteAttributeTemplate(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.AttributeTemplateService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "删除属性模板失败")
		return
	}
	response.Success(c, nil)
}

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/skumatrix/internal/models"
)

func categoryTemplatesKey(categoryID uint) string {
	return fmt.Sprintf("templates:category:%d", categoryID)
}

// GetCategoryTemplates 获取分类属性模板列表缓存
func GetCategoryTemplates(ctx context.Context, categoryID uint) ([]models.AttributeTemplate, bool, error) {
	if categoryID == 0 {
		return nil, false, nil
	}
	var templates []models.AttributeTemplate
	hit, err := GetJSON(ctx, categoryTemplatesKey(categoryID), &templates)
	if err != nil || !hit {
		return nil, hit, err
	}
	return templates, true, nil
}

// SetCategoryTemplates 写入分类属性模板列表缓存
func SetCategoryTemplates(ctx context.Context, categoryID uint, templates []models.AttributeTemplate, ttl time.Duration) error {
	if categoryID == 0 {
		return nil
	}
	return SetJSON(ctx, categoryTemplatesKey(categoryID), templates, ttl)
}

// DelCategoryTemplates 删除分类属性模板列表缓存（模板变更后失效）
func DelCategoryTemplates(ctx context.Context, categoryID uint) error {
	if categoryID == 0 {
		return nil
	}
	return Del(ctx, categoryTemplatesKey(categoryID))
}

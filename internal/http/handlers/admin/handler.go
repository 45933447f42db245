package admin

import "github.com/skumatrix/internal/provider"

// Handler 平台管理端接口处理器入口
// 说明：该处理器仅用于管理端 API（分类与分类属性模板）。
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

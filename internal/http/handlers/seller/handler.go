package seller

import "github.com/skumatrix/internal/provider"

// Handler 卖家端接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建卖家端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

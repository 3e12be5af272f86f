package admin

import "github.com/blindbox-next/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器用于概率配置、库存调整与抽取记录查询。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

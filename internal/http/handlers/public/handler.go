package public

import "github.com/landdesk/internal/provider"

// Handler 公开接口处理器（登录/注册）
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

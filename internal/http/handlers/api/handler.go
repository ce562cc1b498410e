package api

import "github.com/landdesk/internal/provider"

// Handler 需登录的业务接口处理器
type Handler struct {
	*provider.Container
}

// New 创建业务处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

package shared

import (
	"net/http"

	"github.com/landdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CurrentUserID 读取鉴权中间件写入的用户ID，缺失时回 401
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return id, true
}

// CurrentRole 读取当前用户角色，未设置时返回空串
func CurrentRole(c *gin.Context) string {
	if value, ok := c.Get("role"); ok {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}

// CurrentUsername 读取当前用户名
func CurrentUsername(c *gin.Context) string {
	if value, ok := c.Get("username"); ok {
		if username, ok := value.(string); ok {
			return username
		}
	}
	return ""
}

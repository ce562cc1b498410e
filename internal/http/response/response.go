package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NewPagination 计算总页数
func NewPagination(page, pageSize int, total int64) Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// OK 200，GET 接口直接返回对象/列表
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201，创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 带 message 字段的成功响应，extra 为附加的标识字段
func Message(c *gin.Context, status int, msg string, extra gin.H) {
	body := gin.H{"message": msg}
	for key, value := range extra {
		body[key] = value
	}
	c.JSON(status, body)
}

// Error 错误响应：{"error": msg}，使用真实 HTTP 状态码
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ErrorWithData 错误响应并附带上下文数据（如对账合计）
func ErrorWithData(c *gin.Context, status int, msg string, extra gin.H) {
	body := gin.H{"error": msg}
	for key, value := range extra {
		body[key] = value
	}
	c.JSON(status, body)
}

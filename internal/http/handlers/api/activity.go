package api

import (
	"strconv"

	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/repository"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// ListActivity 管理员查询操作日志
func (h *Handler) ListActivity(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	filter := repository.ActivityLogListFilter{
		Page:       page,
		PageSize:   pageSize,
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.UserID = uint(id)
		}
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, ok := service.ParseFlexibleDate(raw); ok {
			filter.CreatedFrom = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, ok := service.ParseFlexibleDate(raw); ok {
			filter.CreatedTo = &t
		}
	}

	logs, total, err := h.ActivityService.List(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{
		"logs":       logs,
		"pagination": response.NewPagination(page, pageSize, total),
	})
}

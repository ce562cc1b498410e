package api

import (
	"net/http"
	"strconv"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/repository"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type reminderRequest struct {
	PaymentID    *uint       `json:"payment_id"`
	Description  string      `json:"description"`
	DueDate      string      `json:"due_date"`
	ReminderDate string      `json:"reminder_date"`
	Amount       interface{} `json:"amount"`
	Priority     string      `json:"priority"`
	Notes        string      `json:"notes"`
}

func (r reminderRequest) toInput(createdBy uint) service.ReminderInput {
	input := service.ReminderInput{
		PaymentID:    r.PaymentID,
		Description:  r.Description,
		DueDate:      r.DueDate,
		ReminderDate: r.ReminderDate,
		Priority:     r.Priority,
		Notes:        r.Notes,
		CreatedBy:    createdBy,
	}
	if r.Amount != nil {
		if amount, ok := service.CoerceDecimal(r.Amount); ok {
			input.Amount = &amount
		}
	}
	return input
}

// CreateReminder 创建付款提醒
func (h *Handler) CreateReminder(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	reminder, err := h.ReminderService.CreateReminder(dealID, req.toInput(userID))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionCreate,
		EntityType: "reminder",
		EntityID:   reminder.ID,
		Changes:    gin.H{"deal_id": dealID},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "Reminder created successfully", gin.H{"reminder_id": reminder.ID})
}

// ListDealReminders 列出交易下的提醒
func (h *Handler) ListDealReminders(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	reminders, err := h.ReminderService.ListByDeal(dealID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"reminders": reminders})
}

// ListReminders 跨交易提醒列表，支持状态与优先级过滤
func (h *Handler) ListReminders(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	filter := repository.ReminderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	if raw := c.Query("deal_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.DealID = uint(id)
		}
	}

	reminders, total, err := h.ReminderService.List(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{
		"reminders":  reminders,
		"pagination": response.NewPagination(page, pageSize, total),
	})
}

type reminderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateReminderStatus 更新提醒状态
func (h *Handler) UpdateReminderStatus(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	reminderID, ok := shared.ParseUintParam(c, "reminder_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid reminder id")
		return
	}
	var req reminderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ReminderService.UpdateStatus(dealID, reminderID, req.Status); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Reminder status updated", gin.H{
		"reminder_id": reminderID,
		"status":      req.Status,
	})
}

// UpdateReminder 更新提醒内容，空字段跳过
func (h *Handler) UpdateReminder(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	reminderID, ok := shared.ParseUintParam(c, "reminder_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid reminder id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	reminder, err := h.ReminderService.UpdateReminder(dealID, reminderID, req.toInput(userID))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Reminder updated successfully", gin.H{"reminder_id": reminder.ID})
}

// DeleteReminder 删除提醒
func (h *Handler) DeleteReminder(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	reminderID, ok := shared.ParseUintParam(c, "reminder_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid reminder id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.ReminderService.DeleteReminder(dealID, reminderID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionDelete,
		EntityType: "reminder",
		EntityID:   reminderID,
		Changes:    gin.H{"deal_id": dealID},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Reminder deleted successfully", gin.H{"reminder_id": reminderID})
}

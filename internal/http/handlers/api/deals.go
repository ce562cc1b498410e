package api

import (
	"net/http"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/repository"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type dealRequest struct {
	ProjectName      string      `json:"project_name"`
	SurveyNumber     string      `json:"survey_number"`
	PurchaseDate     string      `json:"purchase_date"`
	Taluka           string      `json:"taluka"`
	Village          string      `json:"village"`
	TotalArea        float64     `json:"total_area"`
	AreaUnit         string      `json:"area_unit"`
	PurchaseAmount   interface{} `json:"purchase_amount"`
	SellingAmount    interface{} `json:"selling_amount"`
	Status           string      `json:"status"`
	PaymentMode      string      `json:"payment_mode"`
	ProfitAllocation string      `json:"profit_allocation"`
}

func (r dealRequest) toInput(createdBy uint) service.DealInput {
	input := service.DealInput{
		ProjectName:      r.ProjectName,
		SurveyNumber:     r.SurveyNumber,
		PurchaseDate:     r.PurchaseDate,
		Taluka:           r.Taluka,
		Village:          r.Village,
		TotalArea:        r.TotalArea,
		AreaUnit:         r.AreaUnit,
		Status:           r.Status,
		PaymentMode:      r.PaymentMode,
		ProfitAllocation: r.ProfitAllocation,
		CreatedBy:        createdBy,
	}
	if r.PurchaseAmount != nil {
		if amount, ok := service.CoerceDecimal(r.PurchaseAmount); ok {
			input.PurchaseAmount = &amount
		}
	}
	if r.SellingAmount != nil {
		if amount, ok := service.CoerceDecimal(r.SellingAmount); ok {
			input.SellingAmount = &amount
		}
	}
	return input
}

// CreateDeal 创建交易
func (h *Handler) CreateDeal(c *gin.Context) {
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req dealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	deal, err := h.DealService.CreateDeal(req.toInput(userID))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionCreate,
		EntityType: "deal",
		EntityID:   deal.ID,
		EntityName: deal.ProjectName,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "Deal created successfully", gin.H{"deal_id": deal.ID})
}

// ListDeals 分页列出交易
func (h *Handler) ListDeals(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	filter := repository.DealListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}

	deals, total, err := h.DealService.ListDeals(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.OK(c, gin.H{
		"deals":      deals,
		"pagination": response.NewPagination(page, pageSize, total),
	})
}

// GetDeal 获取交易详情
func (h *Handler) GetDeal(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	deal, err := h.DealService.GetDeal(dealID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, deal)
}

// UpdateDeal 更新交易，空字段跳过
func (h *Handler) UpdateDeal(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req dealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	deal, err := h.DealService.UpdateDeal(dealID, req.toInput(userID))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionUpdate,
		EntityType: "deal",
		EntityID:   deal.ID,
		EntityName: deal.ProjectName,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Deal updated successfully", gin.H{"deal_id": deal.ID})
}

// DeleteDeal 级联删除交易，仅管理员
func (h *Handler) DeleteDeal(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.DealService.DeleteDeal(dealID, shared.CurrentRole(c)); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionDelete,
		EntityType: "deal",
		EntityID:   dealID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Deal deleted successfully", gin.H{"deal_id": dealID})
}

// DealStats 按状态统计交易数量
func (h *Handler) DealStats(c *gin.Context) {
	stats, err := h.DealService.StatusStats()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"stats": stats})
}

// DealFinancials 交易财务汇总
func (h *Handler) DealFinancials(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	financials, err := h.DealService.Financials(dealID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, financials)
}

type expenseRequest struct {
	ExpenseType        string      `json:"expense_type"`
	ExpenseDescription string      `json:"expense_description"`
	Amount             interface{} `json:"amount"`
	PaidBy             string      `json:"paid_by"`
	ExpenseDate        string      `json:"expense_date"`
	ReceiptNumber      string      `json:"receipt_number"`
}

// CreateExpense 登记交易支出
func (h *Handler) CreateExpense(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	amount := decimal.Zero
	if req.Amount != nil {
		if parsed, ok := service.CoerceDecimal(req.Amount); ok {
			amount = parsed
		}
	}

	expense, err := h.DealService.CreateExpense(dealID, service.ExpenseInput{
		ExpenseType:        req.ExpenseType,
		ExpenseDescription: req.ExpenseDescription,
		Amount:             amount,
		PaidBy:             req.PaidBy,
		ExpenseDate:        req.ExpenseDate,
		ReceiptNumber:      req.ReceiptNumber,
		CreatedBy:          userID,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionCreate,
		EntityType: "expense",
		EntityID:   expense.ID,
		Changes:    gin.H{"deal_id": dealID, "amount": expense.Amount},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "Expense created successfully", gin.H{"expense_id": expense.ID})
}

// ListExpenses 列出交易支出
func (h *Handler) ListExpenses(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	expenses, err := h.DealService.ListExpenses(dealID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"expenses": expenses})
}

// DeleteExpense 删除交易支出
func (h *Handler) DeleteExpense(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	expenseID, ok := shared.ParseUintParam(c, "expense_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid expense id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.DealService.DeleteExpense(dealID, expenseID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionDelete,
		EntityType: "expense",
		EntityID:   expenseID,
		Changes:    gin.H{"deal_id": dealID},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Expense deleted successfully", gin.H{"expense_id": expenseID})
}

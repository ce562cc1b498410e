package api

import (
	"net/http"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// partyPayload 参与方份额请求体
// 金额与百分比接受数字或字符串，null/缺失视为未提供。
type partyPayload struct {
	PartyType      string      `json:"party_type"`
	PartyID        *uint       `json:"party_id"`
	Amount         interface{} `json:"amount"`
	Percentage     interface{} `json:"percentage"`
	Role           string      `json:"role"`
	PayToPartyType string      `json:"pay_to_party_type"`
	PayToPartyID   *uint       `json:"pay_to_party_id"`
	PayToName      string      `json:"pay_to_name"`
}

func (p partyPayload) toInput() service.PartyShareInput {
	input := service.PartyShareInput{
		PartyType:      p.PartyType,
		PartyID:        p.PartyID,
		Role:           p.Role,
		PayToPartyType: p.PayToPartyType,
		PayToPartyID:   p.PayToPartyID,
		PayToName:      p.PayToName,
	}
	if p.Amount != nil {
		if amount, ok := service.CoerceDecimal(p.Amount); ok {
			input.Amount = &amount
		}
	}
	if p.Percentage != nil {
		if pct, ok := service.CoerceDecimal(p.Percentage); ok {
			input.Percentage = &pct
		}
	}
	return input
}

type createPaymentRequest struct {
	Amount                interface{}    `json:"amount"`
	Currency              string         `json:"currency"`
	PaymentDate           string         `json:"payment_date"`
	DueDate               string         `json:"due_date"`
	PaymentMode           string         `json:"payment_mode"`
	Reference             string         `json:"reference"`
	Notes                 string         `json:"notes"`
	Description           string         `json:"description"`
	Category              string         `json:"category"`
	Status                string         `json:"status"`
	PaymentType           string         `json:"payment_type"`
	PartyType             string         `json:"party_type"`
	PartyID               *uint          `json:"party_id"`
	PaidBy                string         `json:"paid_by"`
	PaidTo                string         `json:"paid_to"`
	PayerBankName         string         `json:"payer_bank_name"`
	PayerBankAccountNo    string         `json:"payer_bank_account_no"`
	ReceiverBankName      string         `json:"receiver_bank_name"`
	ReceiverBankAccountNo string         `json:"receiver_bank_account_no"`
	Parties               []partyPayload `json:"parties"`
}

// CreatePayment 创建付款，?force=true 跳过对账检查
func (h *Handler) CreatePayment(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	var req createPaymentRequest
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

	parties := make([]service.PartyShareInput, 0, len(req.Parties))
	for _, p := range req.Parties {
		parties = append(parties, p.toInput())
	}

	input := service.CreatePaymentInput{
		Amount:                amount,
		Currency:              req.Currency,
		PaymentDate:           req.PaymentDate,
		DueDate:               req.DueDate,
		PaymentMode:           req.PaymentMode,
		Reference:             req.Reference,
		Notes:                 req.Notes,
		Description:           req.Description,
		Category:              req.Category,
		Status:                req.Status,
		PaymentType:           req.PaymentType,
		PartyType:             req.PartyType,
		PartyID:               req.PartyID,
		PaidBy:                req.PaidBy,
		PaidTo:                req.PaidTo,
		PayerBankName:         req.PayerBankName,
		PayerBankAccountNo:    req.PayerBankAccountNo,
		ReceiverBankName:      req.ReceiverBankName,
		ReceiverBankAccountNo: req.ReceiverBankAccountNo,
		Parties:               parties,
		Force:                 c.Query("force") == "true",
		CreatedBy:             userID,
	}

	payment, created, err := h.PaymentService.CreatePayment(dealID, input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionCreate,
		EntityType: "payment",
		EntityID:   payment.ID,
		EntityName: payment.Reference,
		Changes:    gin.H{"amount": payment.Amount, "deal_id": dealID, "parties": len(created)},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "Payment created successfully", gin.H{
		"payment_id": payment.ID,
		"parties":    len(created),
	})
}

// ListPayments 列出交易付款及参与方明细
func (h *Handler) ListPayments(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	payments, err := h.PaymentService.ListByDeal(dealID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"payments": payments})
}

// GetPayment 获取单笔付款
func (h *Handler) GetPayment(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	paymentID, ok := shared.ParseUintParam(c, "payment_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid payment id")
		return
	}
	payment, err := h.PaymentService.GetPayment(dealID, paymentID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, payment)
}

// UpdatePayment 白名单部分更新，被忽略字段回显为 not_available
func (h *Handler) UpdatePayment(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	paymentID, ok := shared.ParseUintParam(c, "payment_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid payment id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	applied, notAvailable, err := h.PaymentService.UpdatePayment(dealID, paymentID, fields)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionUpdate,
		EntityType: "payment",
		EntityID:   paymentID,
		Changes:    gin.H{"updated_fields": applied},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	body := gin.H{"updated_fields": applied}
	if len(notAvailable) > 0 {
		body["not_available"] = notAvailable
	}
	response.Message(c, http.StatusOK, "Payment updated successfully", body)
}

// DeletePayment 删除付款及凭证，仅创建人或管理员
func (h *Handler) DeletePayment(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	paymentID, ok := shared.ParseUintParam(c, "payment_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid payment id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.PaymentService.DeletePayment(dealID, paymentID, userID, shared.CurrentRole(c)); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionDelete,
		EntityType: "payment",
		EntityID:   paymentID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Payment deleted successfully", gin.H{"payment_id": paymentID})
}

type installmentEntryPayload struct {
	Amount      interface{} `json:"amount"`
	PaymentDate string      `json:"payment_date"`
	DueDate     string      `json:"due_date"`
}

type splitInstallmentsRequest struct {
	Installments          []installmentEntryPayload `json:"installments"`
	Currency              string                    `json:"currency"`
	PaymentMode           string                    `json:"payment_mode"`
	PaymentType           string                    `json:"payment_type"`
	Status                string                    `json:"status"`
	Reference             string                    `json:"reference"`
	Notes                 string                    `json:"notes"`
	Description           string                    `json:"description"`
	Category              string                    `json:"category"`
	PartyType             string                    `json:"party_type"`
	PartyID               *uint                     `json:"party_id"`
	PaidBy                string                    `json:"paid_by"`
	PaidTo                string                    `json:"paid_to"`
	PayerBankName         string                    `json:"payer_bank_name"`
	PayerBankAccountNo    string                    `json:"payer_bank_account_no"`
	ReceiverBankName      string                    `json:"receiver_bank_name"`
	ReceiverBankAccountNo string                    `json:"receiver_bank_account_no"`
}

// SplitInstallments 把一笔逻辑总额拆为多期付款
func (h *Handler) SplitInstallments(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	var req splitInstallmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entries := make([]service.InstallmentEntryInput, 0, len(req.Installments))
	for _, entry := range req.Installments {
		amount := decimal.Zero
		if entry.Amount != nil {
			if parsed, ok := service.CoerceDecimal(entry.Amount); ok {
				amount = parsed
			}
		}
		entries = append(entries, service.InstallmentEntryInput{
			Amount:      amount,
			PaymentDate: entry.PaymentDate,
			DueDate:     entry.DueDate,
		})
	}

	payments, planID, err := h.PaymentService.SplitInstallments(dealID, service.SplitInstallmentsInput{
		Installments:          entries,
		Currency:              req.Currency,
		PaymentMode:           req.PaymentMode,
		PaymentType:           req.PaymentType,
		Status:                req.Status,
		Reference:             req.Reference,
		Notes:                 req.Notes,
		Description:           req.Description,
		Category:              req.Category,
		PartyType:             req.PartyType,
		PartyID:               req.PartyID,
		PaidBy:                req.PaidBy,
		PaidTo:                req.PaidTo,
		PayerBankName:         req.PayerBankName,
		PayerBankAccountNo:    req.PayerBankAccountNo,
		ReceiverBankName:      req.ReceiverBankName,
		ReceiverBankAccountNo: req.ReceiverBankAccountNo,
		CreatedBy:             userID,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	ids := make([]uint, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID)
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionCreate,
		EntityType: "installment_plan",
		EntityName: planID,
		Changes:    gin.H{"deal_id": dealID, "installments": len(payments)},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "Installment plan created successfully", gin.H{
		"installment_plan_id": planID,
		"payment_ids":         ids,
		"total_installments":  len(ids),
	})
}

// GetInstallments 获取某期付款所属计划的全部分期
func (h *Handler) GetInstallments(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	paymentID, ok := shared.ParseUintParam(c, "payment_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid payment id")
		return
	}

	installments, err := h.PaymentService.GetInstallmentPlan(dealID, paymentID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"installments": installments})
}

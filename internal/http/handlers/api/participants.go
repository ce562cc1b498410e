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

type participantRequest struct {
	Name             string      `json:"name"`
	Mobile           string      `json:"mobile"`
	Email            string      `json:"email"`
	AadharCard       string      `json:"aadhar_card"`
	PanCard          string      `json:"pan_card"`
	Address          string      `json:"address"`
	PercentageShare  float64     `json:"percentage_share"`
	InvestmentAmount interface{} `json:"investment_amount"`
}

func (r participantRequest) toInput() service.ParticipantInput {
	input := service.ParticipantInput{
		Name:            r.Name,
		Mobile:          r.Mobile,
		Email:           r.Email,
		AadharCard:      r.AadharCard,
		PanCard:         r.PanCard,
		Address:         r.Address,
		PercentageShare: r.PercentageShare,
	}
	if r.InvestmentAmount != nil {
		if amount, ok := service.CoerceDecimal(r.InvestmentAmount); ok {
			input.InvestmentAmount = &amount
		}
	}
	return input
}

func (h *Handler) logParticipant(c *gin.Context, userID uint, action, entityType string, entityID uint, name string) {
	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: name,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
}

func bindParticipant(c *gin.Context) (uint, participantRequest, bool) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return 0, participantRequest{}, false
	}
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return 0, participantRequest{}, false
	}
	return dealID, req, true
}

// CreateOwner 新增地主
func (h *Handler) CreateOwner(c *gin.Context) {
	dealID, req, ok := bindParticipant(c)
	if !ok {
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	owner, err := h.ParticipantService.CreateOwner(dealID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	h.logParticipant(c, userID, constants.ActivityActionCreate, "owner", owner.ID, owner.Name)
	response.Message(c, http.StatusCreated, "Owner created successfully", gin.H{"owner_id": owner.ID})
}

// ListOwners 列出交易地主
func (h *Handler) ListOwners(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	owners, err := h.ParticipantService.ListOwners(dealID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"owners": owners})
}

// UpdateOwner 更新地主
func (h *Handler) UpdateOwner(c *gin.Context) {
	dealID, req, ok := bindParticipant(c)
	if !ok {
		return
	}
	ownerID, ok := shared.ParseUintParam(c, "owner_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid owner id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	owner, err := h.ParticipantService.UpdateOwner(dealID, ownerID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	h.logParticipant(c, userID, constants.ActivityActionUpdate, "owner", owner.ID, owner.Name)
	response.Message(c, http.StatusOK, "Owner updated successfully", gin.H{"owner_id": owner.ID})
}

// DeleteOwner 删除地主
func (h *Handler) DeleteOwner(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	ownerID, ok := shared.ParseUintParam(c, "owner_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid owner id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	if err := h.ParticipantService.DeleteOwner(dealID, ownerID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	h.logParticipant(c, userID, constants.ActivityActionDelete, "owner", ownerID, "")
	response.Message(c, http.StatusOK, "Owner deleted successfully", gin.H{"owner_id": ownerID})
}

type starRequest struct {
	Starred *bool `json:"starred"`
}

// StarOwner 标记或取消标记地主
func (h *Handler) StarOwner(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	ownerID, ok := shared.ParseUintParam(c, "owner_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid owner id")
		return
	}
	var req starRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	starred := true
	if req.Starred != nil {
		starred = *req.Starred
	}
	if err := h.ParticipantService.StarOwner(dealID, ownerID, starred); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Owner star updated", gin.H{"owner_id": ownerID, "starred": starred})
}

// CreateInvestor 新增投资人
func (h *Handler) CreateInvestor(c *gin.Context) {
	dealID, req, ok := bindParticipant(c)
	if !ok {
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	investor, err := h.ParticipantService.CreateInvestor(dealID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	h.logParticipant(c, userID, constants.ActivityActionCreate, "investor", investor.ID, investor.InvestorName)
	response.Message(c, http.StatusCreated, "Investor created successfully", gin.H{"investor_id": investor.ID})
}

// ListInvestors 列出交易投资人
func (h *Handler) ListInvestors(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	investors, err := h.ParticipantService.ListInvestors(dealID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"investors": investors})
}

// UpdateInvestor 更新投资人
func (h *Handler) UpdateInvestor(c *gin.Context) {
	dealID, req, ok := bindParticipant(c)
	if !ok {
		return
	}
	investorID, ok := shared.ParseUintParam(c, "investor_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid investor id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	investor, err := h.ParticipantService.UpdateInvestor(dealID, investorID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	h.logParticipant(c, userID, constants.ActivityActionUpdate, "investor", investor.ID, investor.InvestorName)
	response.Message(c, http.StatusOK, "Investor updated successfully", gin.H{"investor_id": investor.ID})
}

// DeleteInvestor 删除投资人
func (h *Handler) DeleteInvestor(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	investorID, ok := shared.ParseUintParam(c, "investor_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid investor id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	if err := h.ParticipantService.DeleteInvestor(dealID, investorID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	h.logParticipant(c, userID, constants.ActivityActionDelete, "investor", investorID, "")
	response.Message(c, http.StatusOK, "Investor deleted successfully", gin.H{"investor_id": investorID})
}

// StarInvestor 标记或取消标记投资人
func (h *Handler) StarInvestor(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	investorID, ok := shared.ParseUintParam(c, "investor_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid investor id")
		return
	}
	var req starRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	starred := true
	if req.Starred != nil {
		starred = *req.Starred
	}
	if err := h.ParticipantService.StarInvestor(dealID, investorID, starred); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Investor star updated", gin.H{"investor_id": investorID, "starred": starred})
}

// CreateBuyer 新增买方
func (h *Handler) CreateBuyer(c *gin.Context) {
	dealID, req, ok := bindParticipant(c)
	if !ok {
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	buyer, err := h.ParticipantService.CreateBuyer(dealID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	h.logParticipant(c, userID, constants.ActivityActionCreate, "buyer", buyer.ID, buyer.Name)
	response.Message(c, http.StatusCreated, "Buyer created successfully", gin.H{"buyer_id": buyer.ID})
}

// ListBuyers 列出交易买方
func (h *Handler) ListBuyers(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	buyers, err := h.ParticipantService.ListBuyers(dealID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"buyers": buyers})
}

// UpdateBuyer 更新买方
func (h *Handler) UpdateBuyer(c *gin.Context) {
	dealID, req, ok := bindParticipant(c)
	if !ok {
		return
	}
	buyerID, ok := shared.ParseUintParam(c, "buyer_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid buyer id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	buyer, err := h.ParticipantService.UpdateBuyer(dealID, buyerID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	h.logParticipant(c, userID, constants.ActivityActionUpdate, "buyer", buyer.ID, buyer.Name)
	response.Message(c, http.StatusOK, "Buyer updated successfully", gin.H{"buyer_id": buyer.ID})
}

// DeleteBuyer 删除买方
func (h *Handler) DeleteBuyer(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	buyerID, ok := shared.ParseUintParam(c, "buyer_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid buyer id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	if err := h.ParticipantService.DeleteBuyer(dealID, buyerID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	h.logParticipant(c, userID, constants.ActivityActionDelete, "buyer", buyerID, "")
	response.Message(c, http.StatusOK, "Buyer deleted successfully", gin.H{"buyer_id": buyerID})
}

type investorPaymentRequest struct {
	OwnerID     uint        `json:"owner_id"`
	Amount      interface{} `json:"amount"`
	PaymentDate string      `json:"payment_date"`
	PaymentMode string      `json:"payment_mode"`
	Notes       string      `json:"notes"`
}

// RecordInvestorPayment 登记投资人向地主的付款
func (h *Handler) RecordInvestorPayment(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	investorID, ok := shared.ParseUintParam(c, "investor_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid investor id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}
	var req investorPaymentRequest
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

	payment, err := h.ParticipantService.RecordInvestorToOwnerPayment(
		dealID, investorID, req.OwnerID, amount, req.PaymentDate, req.PaymentMode, req.Notes, userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionCreate,
		EntityType: "payment",
		EntityID:   payment.ID,
		Changes:    gin.H{"deal_id": dealID, "investor_id": investorID, "owner_id": req.OwnerID},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "Payment recorded successfully", gin.H{"payment_id": payment.ID})
}

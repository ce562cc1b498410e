package api

import (
	"net/http"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AddPaymentParty 向已有付款追加参与方，不触发对账
func (h *Handler) AddPaymentParty(c *gin.Context) {
	paymentID, ok := shared.ParseUintParam(c, "payment_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid payment id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	var req partyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	party, err := h.PaymentService.AddParty(paymentID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionCreate,
		EntityType: "payment_party",
		EntityID:   party.ID,
		Changes:    gin.H{"payment_id": paymentID, "party_type": party.PartyType},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "Party added successfully", gin.H{"party_id": party.ID})
}

// UpdatePaymentParty 更新付款参与方
func (h *Handler) UpdatePaymentParty(c *gin.Context) {
	paymentID, ok := shared.ParseUintParam(c, "payment_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid payment id")
		return
	}
	partyID, ok := shared.ParseUintParam(c, "party_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid party id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	var req partyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	party, err := h.PaymentService.UpdateParty(paymentID, partyID, req.toInput())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionUpdate,
		EntityType: "payment_party",
		EntityID:   party.ID,
		Changes:    gin.H{"payment_id": paymentID},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Party updated successfully", gin.H{"party_id": party.ID})
}

// DeletePaymentParty 删除付款参与方
func (h *Handler) DeletePaymentParty(c *gin.Context) {
	paymentID, ok := shared.ParseUintParam(c, "payment_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid payment id")
		return
	}
	partyID, ok := shared.ParseUintParam(c, "party_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid party id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.PaymentService.DeleteParty(paymentID, partyID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionDelete,
		EntityType: "payment_party",
		EntityID:   partyID,
		Changes:    gin.H{"payment_id": paymentID},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Party deleted successfully", gin.H{"party_id": partyID})
}

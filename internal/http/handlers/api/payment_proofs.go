package api

import (
	"net/http"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadPaymentProof 上传付款凭证，multipart 字段名 proof
func (h *Handler) UploadPaymentProof(c *gin.Context) {
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

	file, err := c.FormFile("proof")
	if err != nil {
		shared.RespondServiceError(c, service.ErrUploadMissingFile)
		return
	}

	proof, err := h.PaymentService.UploadProof(dealID, paymentID, file, c.PostForm("doc_type"), userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionCreate,
		EntityType: "payment_proof",
		EntityID:   proof.ID,
		EntityName: proof.FileName,
		Changes:    gin.H{"payment_id": paymentID},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "Proof uploaded successfully", gin.H{
		"proof_id":  proof.ID,
		"file_path": proof.FilePath,
	})
}

// ListPaymentProofs 列出某笔付款的凭证
func (h *Handler) ListPaymentProofs(c *gin.Context) {
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

	proofs, err := h.PaymentService.ListProofs(dealID, paymentID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"proofs": proofs})
}

// DeletePaymentProof 删除凭证记录并尽力删除文件
func (h *Handler) DeletePaymentProof(c *gin.Context) {
	proofID, ok := shared.ParseUintParam(c, "proof_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid proof id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.PaymentService.DeleteProof(proofID, userID, shared.CurrentRole(c)); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionDelete,
		EntityType: "payment_proof",
		EntityID:   proofID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Proof deleted successfully", gin.H{"proof_id": proofID})
}

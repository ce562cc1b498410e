package api

import (
	"net/http"
	"strconv"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadDocument 上传交易文档，multipart 字段名 document
// 可选表单字段 owner_id / investor_id 把文档挂到参与方名下。
func (h *Handler) UploadDocument(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		shared.RespondServiceError(c, service.ErrUploadMissingFile)
		return
	}

	input := service.UploadDocumentInput{
		DealID:       dealID,
		DocumentType: c.PostForm("document_type"),
		UploadedBy:   userID,
	}
	if raw := c.PostForm("owner_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			ownerID := uint(id)
			input.OwnerID = &ownerID
		}
	}
	if raw := c.PostForm("investor_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			investorID := uint(id)
			input.InvestorID = &investorID
		}
	}

	doc, err := h.DocumentService.Upload(file, input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionCreate,
		EntityType: "document",
		EntityID:   doc.ID,
		EntityName: doc.DocumentName,
		Changes:    gin.H{"deal_id": dealID},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusCreated, "Document uploaded successfully", gin.H{
		"document_id": doc.ID,
		"file_path":   doc.FilePath,
	})
}

// ListDocuments 列出交易文档，可用 owner_id / investor_id 过滤
func (h *Handler) ListDocuments(c *gin.Context) {
	dealID, ok := shared.ParseUintParam(c, "deal_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid deal id")
		return
	}

	if raw := c.Query("owner_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			docs, err := h.DocumentService.ListByOwner(uint(id))
			if err != nil {
				shared.RespondServiceError(c, err)
				return
			}
			response.OK(c, gin.H{"documents": docs})
			return
		}
	}
	if raw := c.Query("investor_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			docs, err := h.DocumentService.ListByInvestor(uint(id))
			if err != nil {
				shared.RespondServiceError(c, err)
				return
			}
			response.OK(c, gin.H{"documents": docs})
			return
		}
	}

	docs, err := h.DocumentService.ListByDeal(dealID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"documents": docs})
}

// DeleteDocument 删除文档记录并尽力删除文件
func (h *Handler) DeleteDocument(c *gin.Context) {
	documentID, ok := shared.ParseUintParam(c, "document_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid document id")
		return
	}
	userID, ok := shared.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.DocumentService.Delete(documentID, userID, shared.CurrentRole(c)); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.ActivityService.Log(service.LogEntry{
		UserID:     userID,
		Action:     constants.ActivityActionDelete,
		EntityType: "document",
		EntityID:   documentID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	response.Message(c, http.StatusOK, "Document deleted successfully", gin.H{"document_id": documentID})
}

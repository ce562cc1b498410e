package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/landdesk/internal/http/handlers/shared"
	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/repository"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
)

func ledgerFilterFromQuery(c *gin.Context) repository.LedgerFilter {
	filter := repository.LedgerFilter{
		PartyType:    c.Query("party_type"),
		PaymentMode:  c.Query("payment_mode"),
		PaymentType:  c.Query("payment_type"),
		Status:       c.Query("status"),
		PersonSearch: c.Query("person"),
	}
	if raw := c.Query("deal_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.DealID = uint(id)
		}
	}
	if raw := c.Query("party_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.PartyID = uint(id)
		}
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, ok := service.ParseFlexibleDate(raw); ok {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, ok := service.ParseFlexibleDate(raw); ok {
			filter.EndDate = &t
		}
	}
	return filter
}

// Ledger 跨交易台账查询，分页返回
func (h *Handler) Ledger(c *gin.Context) {
	filter := ledgerFilterFromQuery(c)
	filter.Page, filter.PageSize = shared.ParsePagination(c)

	entries, total, err := h.LedgerService.Query(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.OK(c, gin.H{
		"entries":    entries,
		"pagination": response.NewPagination(filter.Page, filter.PageSize, total),
	})
}

func (h *Handler) ledgerEntriesForExport(c *gin.Context) ([]service.LedgerEntry, bool) {
	filter := ledgerFilterFromQuery(c)
	entries, _, err := h.LedgerService.Query(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return nil, false
	}
	return entries, true
}

func exportFileName(ext string) string {
	return fmt.Sprintf("ledger_%s.%s", time.Now().Format("20060102_150405"), ext)
}

// ExportLedgerCSV 导出台账 CSV
func (h *Handler) ExportLedgerCSV(c *gin.Context) {
	entries, ok := h.ledgerEntriesForExport(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName("csv")))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.LedgerService.ExportCSV(c.Writer, entries); err != nil {
		shared.RequestLog(c).Errorw("ledger_export_failed", "format", "csv", "error", err)
	}
}

// ExportLedgerXLSX 导出台账 Excel
func (h *Handler) ExportLedgerXLSX(c *gin.Context) {
	entries, ok := h.ledgerEntriesForExport(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName("xlsx")))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := h.LedgerService.ExportXLSX(c.Writer, entries); err != nil {
		shared.RequestLog(c).Errorw("ledger_export_failed", "format", "xlsx", "error", err)
	}
}

// ExportLedgerPDF 导出台账 PDF
func (h *Handler) ExportLedgerPDF(c *gin.Context) {
	entries, ok := h.ledgerEntriesForExport(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName("pdf")))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if err := h.LedgerService.ExportPDF(c.Writer, entries); err != nil {
		shared.RequestLog(c).Errorw("ledger_export_failed", "format", "pdf", "error", err)
	}
}

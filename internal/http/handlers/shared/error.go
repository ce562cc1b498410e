package shared

import (
	"errors"
	"net/http"

	"github.com/landdesk/internal/http/response"
	"github.com/landdesk/internal/logger"
	"github.com/landdesk/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// notFoundErrors 映射为 404 的服务错误
var notFoundErrors = []error{
	service.ErrNotFound,
	service.ErrDealNotFound,
	service.ErrPaymentNotFound,
	service.ErrPartyNotFound,
	service.ErrProofNotFound,
	service.ErrDocumentNotFound,
	service.ErrReminderNotFound,
	service.ErrOwnerNotFound,
	service.ErrInvestorNotFound,
	service.ErrBuyerNotFound,
}

// badRequestErrors 映射为 400 的服务错误
var badRequestErrors = []error{
	service.ErrInvalidAmount,
	service.ErrInvalidPaymentDate,
	service.ErrInvalidDueDate,
	service.ErrNoUpdatableFields,
	service.ErrPaymentNotInstallment,
	service.ErrInvalidInstallments,
	service.ErrInvalidInstallmentDate,
	service.ErrInvalidReminderStatus,
	service.ErrInvalidDealName,
	service.ErrInvalidPurchaseDate,
	service.ErrInvalidExpenseDate,
	service.ErrInvalidReminderDate,
	service.ErrParticipantName,
	service.ErrUsernameTaken,
	service.ErrWeakPassword,
	service.ErrInvalidPassword,
	service.ErrUploadTooLarge,
	service.ErrUploadBadType,
	service.ErrUploadMissingFile,
}

// RespondServiceError 将服务层错误映射为 HTTP 响应
// 对账失败额外携带计算出的合计，供调用方修正或决定 force。
// 未识别的错误按 500 返回并记录日志。
func RespondServiceError(c *gin.Context, err error) {
	var pctErr *service.PercentageMismatchError
	if errors.As(err, &pctErr) {
		response.ErrorWithData(c, http.StatusBadRequest, pctErr.Error(), gin.H{
			"total_percentage": pctErr.TotalPercentage.InexactFloat64(),
		})
		return
	}
	var amtErr *service.AmountMismatchError
	if errors.As(err, &amtErr) {
		response.ErrorWithData(c, http.StatusBadRequest, amtErr.Error(), gin.H{
			"payment_amount": amtErr.PaymentAmount.InexactFloat64(),
			"parties_total":  amtErr.PartiesTotal.InexactFloat64(),
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrUserDisabled):
		response.Error(c, http.StatusForbidden, err.Error())
	case isAnyOf(err, notFoundErrors):
		response.Error(c, http.StatusNotFound, err.Error())
	case isAnyOf(err, badRequestErrors):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		RequestLog(c).Errorw("handler_error", "error", err)
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}

func isAnyOf(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

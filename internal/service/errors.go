package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// 服务层哨兵错误，处理器按错误映射 HTTP 状态码。
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("operation not allowed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserDisabled       = errors.New("user account disabled")

	ErrDealNotFound     = errors.New("deal not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPartyNotFound    = errors.New("payment party not found")
	ErrProofNotFound    = errors.New("payment proof not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrReminderNotFound = errors.New("payment reminder not found")
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrInvestorNotFound = errors.New("investor not found")
	ErrBuyerNotFound    = errors.New("buyer not found")

	ErrInvalidAmount          = errors.New("amount must be a positive number")
	ErrInvalidDealName        = errors.New("project name is required")
	ErrInvalidPurchaseDate    = errors.New("purchase date must be a valid date")
	ErrInvalidExpenseDate     = errors.New("expense date must be a valid date")
	ErrInvalidReminderDate    = errors.New("reminder date is required and must be a valid date")
	ErrParticipantName        = errors.New("name is required")
	ErrInvalidPaymentDate     = errors.New("payment date is required and must be a valid date")
	ErrInvalidDueDate         = errors.New("due date must be a valid date")
	ErrNoUpdatableFields      = errors.New("no valid updatable fields provided")
	ErrPaymentNotInstallment  = errors.New("payment is not part of an installment plan")
	ErrInvalidInstallments    = errors.New("at least 2 installments are required")
	ErrInvalidInstallmentDate = errors.New("installment dates must be in YYYY-MM-DD format")
	ErrInvalidReminderStatus  = errors.New("invalid reminder status")
	ErrUploadTooLarge         = errors.New("file size exceeds limit")
	ErrUploadBadType          = errors.New("file type not allowed")
	ErrUploadMissingFile      = errors.New("no file provided")
)

// 对账误差容忍度：±0.01
var reconciliationTolerance = decimal.RequireFromString("0.01")

// PercentageMismatchError 参与方百分比合计偏离 100 超出容差
type PercentageMismatchError struct {
	TotalPercentage decimal.Decimal
}

func (e *PercentageMismatchError) Error() string {
	return fmt.Sprintf("party percentages must total 100, got %s", e.TotalPercentage.String())
}

// AmountMismatchError 参与方金额合计与付款总额偏差超出容差
type AmountMismatchError struct {
	PaymentAmount decimal.Decimal
	PartiesTotal  decimal.Decimal
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("party amounts total %s does not match payment amount %s",
		e.PartiesTotal.StringFixed(2), e.PaymentAmount.StringFixed(2))
}

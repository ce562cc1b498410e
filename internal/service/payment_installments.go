package service

import (
	"strings"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InstallmentEntryInput 单期分期输入
type InstallmentEntryInput struct {
	Amount      decimal.Decimal
	PaymentDate string
	DueDate     string
}

// SplitInstallmentsInput 分期拆分参数
// 除逐期的金额与日期外，其余字段为各期共享的元数据。
type SplitInstallmentsInput struct {
	Installments          []InstallmentEntryInput
	Currency              string
	PaymentMode           string
	PaymentType           string
	Status                string
	Reference             string
	Notes                 string
	Description           string
	Category              string
	PartyType             string
	PartyID               *uint
	PaidBy                string
	PaidTo                string
	PayerBankName         string
	PayerBankAccountNo    string
	ReceiverBankName      string
	ReceiverBankAccountNo string
	CreatedBy             uint
}

// SplitInstallments 把一笔逻辑总额拆为 N 期付款
// 各期共享新生成的 installment_plan_id 与 (parent_amount, total_installments)，
// parent_amount 为各期金额之和而非调用方单独提供。分期序号按输入顺序 1 起，
// 不按日期重排。日期仅接受 YYYY-MM-DD。全部行在一个事务内写入。
func (s *PaymentService) SplitInstallments(dealID uint, input SplitInstallmentsInput) ([]models.Payment, string, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, "", err
	}
	if deal == nil {
		return nil, "", ErrDealNotFound
	}

	if len(input.Installments) < 2 {
		return nil, "", ErrInvalidInstallments
	}

	total := len(input.Installments)
	parentAmount := decimal.Zero
	dates := make([]models.Date, total)
	dueDates := make([]*models.Date, total)
	for i, entry := range input.Installments {
		if !entry.Amount.IsPositive() {
			return nil, "", ErrInvalidAmount
		}
		parsed, ok := ParseStrictDate(entry.PaymentDate)
		if !ok {
			return nil, "", ErrInvalidInstallmentDate
		}
		dates[i] = models.NewDate(parsed)
		if entry.DueDate != "" {
			due, ok := ParseStrictDate(entry.DueDate)
			if !ok {
				return nil, "", ErrInvalidInstallmentDate
			}
			dueDates[i] = models.NewDatePtr(&due)
		} else {
			// 缺省到期日取本期付款日
			dueDates[i] = &dates[i]
		}
		parentAmount = parentAmount.Add(entry.Amount)
	}

	planID := uuid.NewString()
	currency := input.Currency
	if currency == "" {
		currency = constants.CurrencyDefault
	}
	// 分期缺省类型是购地款
	paymentType := constants.PaymentTypeLandPurchase
	if strings.TrimSpace(input.PaymentType) != "" {
		paymentType = normalizePaymentType(input.PaymentType)
	}

	payments := make([]models.Payment, total)
	for i, entry := range input.Installments {
		payments[i] = models.Payment{
			DealID:                dealID,
			PartyType:             normalizePartyType(input.PartyType),
			PartyID:               input.PartyID,
			Amount:                models.NewMoneyFromDecimal(entry.Amount),
			Currency:              currency,
			PaymentDate:           dates[i],
			DueDate:               dueDates[i],
			PaymentMode:           input.PaymentMode,
			Reference:             input.Reference,
			Notes:                 input.Notes,
			Description:           input.Description,
			Category:              input.Category,
			Status:                normalizeStatus(input.Status),
			PaymentType:           paymentType,
			PaidBy:                input.PaidBy,
			PaidTo:                input.PaidTo,
			CreatedBy:             input.CreatedBy,
			IsInstallment:         true,
			InstallmentNumber:     i + 1,
			TotalInstallments:     total,
			ParentAmount:          models.NewMoneyFromDecimal(parentAmount),
			InstallmentPlanID:     planID,
			PayerBankName:         input.PayerBankName,
			PayerBankAccountNo:    input.PayerBankAccountNo,
			ReceiverBankName:      input.ReceiverBankName,
			ReceiverBankAccountNo: input.ReceiverBankAccountNo,
		}
	}

	err = s.paymentRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.paymentRepo.WithTx(tx)
		for i := range payments {
			if err := repo.Create(&payments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return payments, planID, nil
}

// GetInstallmentPlan 获取某期付款所属计划的全部分期
// 优先按 installment_plan_id 检索；历史行无计划ID时退回
// (deal_id, parent_amount, total_installments) 匹配。
func (s *PaymentService) GetInstallmentPlan(dealID, paymentID uint) ([]models.Payment, error) {
	payment, err := s.paymentRepo.GetByDealAndID(dealID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if !payment.IsInstallment {
		return nil, ErrPaymentNotInstallment
	}

	if payment.InstallmentPlanID != "" {
		return s.paymentRepo.ListByPlanID(payment.InstallmentPlanID)
	}
	return s.paymentRepo.ListPlanByLegacyKey(dealID, payment.ParentAmount.Decimal, payment.TotalInstallments)
}

package service

import (
	"strings"
	"time"

	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/logger"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DealService 交易服务
type DealService struct {
	cfg          *config.Config
	dealRepo     repository.DealRepository
	paymentRepo  repository.PaymentRepository
	partyRepo    repository.PaymentPartyRepository
	proofRepo    repository.PaymentProofRepository
	ownerRepo    repository.OwnerRepository
	investorRepo repository.InvestorRepository
	buyerRepo    repository.BuyerRepository
	expenseRepo  repository.ExpenseRepository
	documentRepo repository.DocumentRepository
	reminderRepo repository.PaymentReminderRepository
}

// NewDealService 创建交易服务实例
func NewDealService(
	cfg *config.Config,
	dealRepo repository.DealRepository,
	paymentRepo repository.PaymentRepository,
	partyRepo repository.PaymentPartyRepository,
	proofRepo repository.PaymentProofRepository,
	ownerRepo repository.OwnerRepository,
	investorRepo repository.InvestorRepository,
	buyerRepo repository.BuyerRepository,
	expenseRepo repository.ExpenseRepository,
	documentRepo repository.DocumentRepository,
	reminderRepo repository.PaymentReminderRepository,
) *DealService {
	return &DealService{
		cfg:          cfg,
		dealRepo:     dealRepo,
		paymentRepo:  paymentRepo,
		partyRepo:    partyRepo,
		proofRepo:    proofRepo,
		ownerRepo:    ownerRepo,
		investorRepo: investorRepo,
		buyerRepo:    buyerRepo,
		expenseRepo:  expenseRepo,
		documentRepo: documentRepo,
		reminderRepo: reminderRepo,
	}
}

// DealInput 创建/更新交易参数
type DealInput struct {
	ProjectName      string
	SurveyNumber     string
	PurchaseDate     string
	Taluka           string
	Village          string
	TotalArea        float64
	AreaUnit         string
	PurchaseAmount   *decimal.Decimal
	SellingAmount    *decimal.Decimal
	Status           string
	PaymentMode      string
	ProfitAllocation string
	CreatedBy        uint
}

// CreateDeal 创建交易
func (s *DealService) CreateDeal(input DealInput) (*models.Deal, error) {
	name := strings.TrimSpace(input.ProjectName)
	if name == "" {
		return nil, ErrInvalidDealName
	}

	var purchaseDate *time.Time
	if raw := strings.TrimSpace(input.PurchaseDate); raw != "" {
		parsed, ok := ParseFlexibleDate(raw)
		if !ok {
			return nil, ErrInvalidPurchaseDate
		}
		purchaseDate = &parsed
	}

	deal := &models.Deal{
		ProjectName:      name,
		SurveyNumber:     strings.TrimSpace(input.SurveyNumber),
		PurchaseDate:     purchaseDate,
		Taluka:           strings.TrimSpace(input.Taluka),
		Village:          strings.TrimSpace(input.Village),
		TotalArea:        input.TotalArea,
		AreaUnit:         strings.TrimSpace(input.AreaUnit),
		Status:           normalizeDealStatus(input.Status),
		PaymentMode:      strings.TrimSpace(input.PaymentMode),
		ProfitAllocation: strings.TrimSpace(input.ProfitAllocation),
		CreatedBy:        input.CreatedBy,
	}
	if input.PurchaseAmount != nil {
		deal.PurchaseAmount = models.NewMoneyFromDecimal(*input.PurchaseAmount)
	}
	if input.SellingAmount != nil {
		deal.SellingAmount = models.NewMoneyFromDecimal(*input.SellingAmount)
	}

	if err := s.dealRepo.Create(deal); err != nil {
		return nil, err
	}
	return deal, nil
}

// GetDeal 获取交易
func (s *DealService) GetDeal(id uint) (*models.Deal, error) {
	deal, err := s.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return deal, nil
}

// UpdateDeal 更新交易（空字符串字段跳过，金额按提供与否覆盖）
func (s *DealService) UpdateDeal(id uint, input DealInput) (*models.Deal, error) {
	deal, err := s.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}

	if name := strings.TrimSpace(input.ProjectName); name != "" {
		deal.ProjectName = name
	}
	if v := strings.TrimSpace(input.SurveyNumber); v != "" {
		deal.SurveyNumber = v
	}
	if raw := strings.TrimSpace(input.PurchaseDate); raw != "" {
		parsed, ok := ParseFlexibleDate(raw)
		if !ok {
			return nil, ErrInvalidPurchaseDate
		}
		deal.PurchaseDate = &parsed
	}
	if v := strings.TrimSpace(input.Taluka); v != "" {
		deal.Taluka = v
	}
	if v := strings.TrimSpace(input.Village); v != "" {
		deal.Village = v
	}
	if input.TotalArea > 0 {
		deal.TotalArea = input.TotalArea
	}
	if v := strings.TrimSpace(input.AreaUnit); v != "" {
		deal.AreaUnit = v
	}
	if input.PurchaseAmount != nil {
		deal.PurchaseAmount = models.NewMoneyFromDecimal(*input.PurchaseAmount)
	}
	if input.SellingAmount != nil {
		deal.SellingAmount = models.NewMoneyFromDecimal(*input.SellingAmount)
	}
	if v := strings.TrimSpace(input.Status); v != "" {
		deal.Status = normalizeDealStatus(v)
	}
	if v := strings.TrimSpace(input.PaymentMode); v != "" {
		deal.PaymentMode = v
	}
	if v := strings.TrimSpace(input.ProfitAllocation); v != "" {
		deal.ProfitAllocation = v
	}

	if err := s.dealRepo.Save(deal); err != nil {
		return nil, err
	}
	return deal, nil
}

// ListDeals 分页查询交易列表
func (s *DealService) ListDeals(filter repository.DealListFilter) ([]models.Deal, int64, error) {
	return s.dealRepo.List(filter)
}

// StatusStats 按状态统计交易数量
func (s *DealService) StatusStats() (map[string]int64, error) {
	return s.dealRepo.StatusStats()
}

// DealFinancials 交易财务汇总
type DealFinancials struct {
	DealID          uint                    `json:"deal_id"`
	PurchaseAmount  models.Money            `json:"purchase_amount"`
	SellingAmount   models.Money            `json:"selling_amount"`
	PaymentsByMode  map[string]models.Money `json:"payments_by_mode"`
	PaymentsTotal   models.Money            `json:"payments_total"`
	ExpensesTotal   models.Money            `json:"expenses_total"`
	InvestmentTotal models.Money            `json:"investment_total"`
}

// Financials 汇总交易的付款（按方式）、支出与投资
func (s *DealService) Financials(dealID uint) (*DealFinancials, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}

	byMode, err := s.paymentRepo.SumByDealID(dealID)
	if err != nil {
		return nil, err
	}
	expensesTotal, err := s.expenseRepo.SumByDealID(dealID)
	if err != nil {
		return nil, err
	}
	investmentTotal, err := s.investorRepo.SumInvestmentByDealID(dealID)
	if err != nil {
		return nil, err
	}

	paymentsByMode := make(map[string]models.Money, len(byMode))
	paymentsTotal := decimal.Zero
	for mode, sum := range byMode {
		paymentsByMode[mode] = models.NewMoneyFromDecimal(sum)
		paymentsTotal = paymentsTotal.Add(sum)
	}

	return &DealFinancials{
		DealID:          dealID,
		PurchaseAmount:  deal.PurchaseAmount,
		SellingAmount:   deal.SellingAmount,
		PaymentsByMode:  paymentsByMode,
		PaymentsTotal:   models.NewMoneyFromDecimal(paymentsTotal),
		ExpensesTotal:   models.NewMoneyFromDecimal(expensesTotal),
		InvestmentTotal: models.NewMoneyFromDecimal(investmentTotal),
	}, nil
}

// DeleteDeal 删除交易及其全部从属数据，仅管理员可操作
// 数据库删除在单事务内；上传文件随后尽力删除。
func (s *DealService) DeleteDeal(id uint, actorRole string) error {
	if actorRole != constants.RoleAdmin {
		return ErrForbidden
	}
	deal, err := s.dealRepo.GetByID(id)
	if err != nil {
		return err
	}
	if deal == nil {
		return ErrDealNotFound
	}

	payments, err := s.paymentRepo.ListByDealID(id)
	if err != nil {
		return err
	}
	documents, err := s.documentRepo.ListByDealID(id)
	if err != nil {
		return err
	}

	var filePaths []string
	for _, doc := range documents {
		filePaths = append(filePaths, doc.FilePath)
	}
	for _, payment := range payments {
		proofs, err := s.proofRepo.ListByPaymentID(payment.ID)
		if err != nil {
			return err
		}
		for _, proof := range proofs {
			filePaths = append(filePaths, proof.FilePath)
		}
	}

	err = s.dealRepo.Transaction(func(tx *gorm.DB) error {
		partyTx := s.partyRepo.WithTx(tx)
		proofTx := s.proofRepo.WithTx(tx)
		for _, payment := range payments {
			if err := proofTx.DeleteByPaymentID(payment.ID); err != nil {
				return err
			}
			if err := partyTx.DeleteByPaymentID(payment.ID); err != nil {
				return err
			}
		}
		if err := s.paymentRepo.WithTx(tx).DeleteByDealID(id); err != nil {
			return err
		}
		if err := s.ownerRepo.WithTx(tx).DeleteByDealID(id); err != nil {
			return err
		}
		if err := s.investorRepo.WithTx(tx).DeleteByDealID(id); err != nil {
			return err
		}
		if err := s.buyerRepo.WithTx(tx).DeleteByDealID(id); err != nil {
			return err
		}
		if err := s.expenseRepo.WithTx(tx).DeleteByDealID(id); err != nil {
			return err
		}
		if err := s.documentRepo.WithTx(tx).DeleteByDealID(id); err != nil {
			return err
		}
		if err := s.reminderRepo.WithTx(tx).DeleteByDealID(id); err != nil {
			return err
		}
		return s.dealRepo.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}

	for _, path := range filePaths {
		s.removeUploadedFile(path)
	}
	return nil
}

// ExpenseInput 支出录入参数
type ExpenseInput struct {
	ExpenseType        string
	ExpenseDescription string
	Amount             decimal.Decimal
	PaidBy             string
	ExpenseDate        string
	ReceiptNumber      string
	CreatedBy          uint
}

// CreateExpense 登记交易支出
func (s *DealService) CreateExpense(dealID uint, input ExpenseInput) (*models.Expense, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var expenseDate *time.Time
	if raw := strings.TrimSpace(input.ExpenseDate); raw != "" {
		parsed, ok := ParseFlexibleDate(raw)
		if !ok {
			return nil, ErrInvalidExpenseDate
		}
		expenseDate = &parsed
	}

	expense := &models.Expense{
		DealID:             dealID,
		ExpenseType:        strings.TrimSpace(input.ExpenseType),
		ExpenseDescription: input.ExpenseDescription,
		Amount:             models.NewMoneyFromDecimal(input.Amount),
		PaidBy:             strings.TrimSpace(input.PaidBy),
		ExpenseDate:        expenseDate,
		ReceiptNumber:      strings.TrimSpace(input.ReceiptNumber),
		CreatedBy:          input.CreatedBy,
	}
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses 列出交易支出
func (s *DealService) ListExpenses(dealID uint) ([]models.Expense, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return s.expenseRepo.ListByDealID(dealID)
}

// DeleteExpense 删除支出
func (s *DealService) DeleteExpense(dealID, expenseID uint) error {
	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return err
	}
	if expense == nil || expense.DealID != dealID {
		return ErrNotFound
	}
	return s.expenseRepo.Delete(expenseID)
}

// removeUploadedFile 尽力删除上传文件
func (s *DealService) removeUploadedFile(storedPath string) {
	if storedPath == "" {
		return
	}
	if err := removeUnderDir(s.cfg.Upload.Dir, storedPath); err != nil {
		logger.Warnw("upload_file_remove_failed", "path", storedPath, "error", err)
	}
}

// normalizeDealStatus 未知状态归入 open
func normalizeDealStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.DealStatusInProgress:
		return constants.DealStatusInProgress
	case constants.DealStatusCompleted:
		return constants.DealStatusCompleted
	case constants.DealStatusCancelled:
		return constants.DealStatusCancelled
	default:
		return constants.DealStatusOpen
	}
}

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

// PaymentService 付款服务
type PaymentService struct {
	cfg         *config.Config
	paymentRepo repository.PaymentRepository
	partyRepo   repository.PaymentPartyRepository
	proofRepo   repository.PaymentProofRepository
	dealRepo    repository.DealRepository
	uploads     *UploadService
}

// NewPaymentService 创建付款服务实例
func NewPaymentService(
	cfg *config.Config,
	paymentRepo repository.PaymentRepository,
	partyRepo repository.PaymentPartyRepository,
	proofRepo repository.PaymentProofRepository,
	dealRepo repository.DealRepository,
	uploads *UploadService,
) *PaymentService {
	return &PaymentService{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		partyRepo:   partyRepo,
		proofRepo:   proofRepo,
		dealRepo:    dealRepo,
		uploads:     uploads,
	}
}

// PartyShareInput 参与方份额输入
// Amount/Percentage 为 nil 表示调用方未提供该字段。
type PartyShareInput struct {
	PartyType      string
	PartyID        *uint
	Amount         *decimal.Decimal
	Percentage     *decimal.Decimal
	Role           string
	PayToPartyType string
	PayToPartyID   *uint
	PayToName      string
}

// CreatePaymentInput 创建付款参数
type CreatePaymentInput struct {
	Amount                decimal.Decimal
	Currency              string
	PaymentDate           string
	DueDate               string
	PaymentMode           string
	Reference             string
	Notes                 string
	Description           string
	Category              string
	Status                string
	PaymentType           string
	PartyType             string
	PartyID               *uint
	PaidBy                string
	PaidTo                string
	PayerBankName         string
	PayerBankAccountNo    string
	ReceiverBankName      string
	ReceiverBankAccountNo string
	Parties               []PartyShareInput
	Force                 bool
	CreatedBy             uint
}

// PaymentWithParties 付款及其参与方明细
type PaymentWithParties struct {
	models.Payment
	Parties []models.PaymentParty `json:"parties"`
}

// CreatePayment 创建付款并对账参与方份额
// 校验顺序：金额为正 → 日期可解析 → 枚举归一化 → 百分比合计 100±0.01
// → 仅有百分比时推导金额 → 金额合计与总额 ±0.01 → 单事务落库。
// force 为 true 时跳过两项对账检查。
func (s *PaymentService) CreatePayment(dealID uint, input CreatePaymentInput) (*models.Payment, []models.PaymentParty, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, nil, err
	}
	if deal == nil {
		return nil, nil, ErrDealNotFound
	}

	if !input.Amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	paymentDate, ok := ParseFlexibleDate(input.PaymentDate)
	if !ok {
		return nil, nil, ErrInvalidPaymentDate
	}

	var dueDate *models.Date
	if raw := strings.TrimSpace(input.DueDate); raw != "" {
		parsed, ok := ParseFlexibleDate(raw)
		if !ok {
			return nil, nil, ErrInvalidDueDate
		}
		dueDate = models.NewDatePtr(&parsed)
	}

	parties, err := reconcileParties(input.Amount, input.Parties, input.Force)
	if err != nil {
		return nil, nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = constants.CurrencyDefault
	}

	payment := &models.Payment{
		DealID:                dealID,
		PartyType:             normalizePartyType(input.PartyType),
		PartyID:               input.PartyID,
		Amount:                models.NewMoneyFromDecimal(input.Amount),
		Currency:              currency,
		PaymentDate:           models.NewDate(paymentDate),
		DueDate:               dueDate,
		PaymentMode:           strings.TrimSpace(input.PaymentMode),
		Reference:             strings.TrimSpace(input.Reference),
		Notes:                 input.Notes,
		Description:           input.Description,
		Category:              strings.TrimSpace(input.Category),
		Status:                normalizeStatus(input.Status),
		PaymentType:           normalizePaymentType(input.PaymentType),
		PaidBy:                strings.TrimSpace(input.PaidBy),
		PaidTo:                strings.TrimSpace(input.PaidTo),
		CreatedBy:             input.CreatedBy,
		PayerBankName:         strings.TrimSpace(input.PayerBankName),
		PayerBankAccountNo:    strings.TrimSpace(input.PayerBankAccountNo),
		ReceiverBankName:      strings.TrimSpace(input.ReceiverBankName),
		ReceiverBankAccountNo: strings.TrimSpace(input.ReceiverBankAccountNo),
	}

	err = s.paymentRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.WithTx(tx).Create(payment); err != nil {
			return err
		}
		partyTx := s.partyRepo.WithTx(tx)
		for i := range parties {
			parties[i].PaymentID = payment.ID
			if err := partyTx.Create(&parties[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return payment, parties, nil
}

// reconcileParties 份额对账并物化为待写入的参与方行
func reconcileParties(amount decimal.Decimal, inputs []PartyShareInput, force bool) ([]models.PaymentParty, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	hasPercentage := false
	hasNonZeroPercentage := false
	hasAmount := false
	for _, p := range inputs {
		if p.Percentage != nil {
			hasPercentage = true
			if !p.Percentage.IsZero() {
				hasNonZeroPercentage = true
			}
		}
		if p.Amount != nil {
			hasAmount = true
		}
	}

	if hasNonZeroPercentage {
		total := decimal.Zero
		for _, p := range inputs {
			if p.Percentage != nil {
				total = total.Add(*p.Percentage)
			}
		}
		if total.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(reconciliationTolerance) && !force {
			return nil, &PercentageMismatchError{TotalPercentage: total}
		}
	}

	amounts := make([]decimal.Decimal, len(inputs))
	amountKnown := make([]bool, len(inputs))
	for i, p := range inputs {
		if p.Amount != nil {
			amounts[i] = p.Amount.Round(2)
			amountKnown[i] = true
		}
	}

	if hasPercentage && !hasAmount {
		for i, p := range inputs {
			if p.Percentage != nil {
				amounts[i] = p.Percentage.Div(decimal.NewFromInt(100)).Mul(amount).Round(2)
				amountKnown[i] = true
			}
		}
	}

	anyAmount := false
	for _, known := range amountKnown {
		if known {
			anyAmount = true
			break
		}
	}
	if anyAmount {
		total := decimal.Zero
		for i := range inputs {
			total = total.Add(amounts[i])
		}
		if total.Sub(amount).Abs().GreaterThan(reconciliationTolerance) && !force {
			return nil, &AmountMismatchError{PaymentAmount: amount, PartiesTotal: total}
		}
	}

	parties := make([]models.PaymentParty, len(inputs))
	for i, p := range inputs {
		percentage := 0.0
		if p.Percentage != nil {
			percentage, _ = p.Percentage.Float64()
		}
		parties[i] = models.PaymentParty{
			PartyType:      normalizePartyType(p.PartyType),
			PartyID:        p.PartyID,
			Amount:         models.NewMoneyFromDecimal(amounts[i]),
			Percentage:     percentage,
			Role:           strings.TrimSpace(p.Role),
			PayToPartyType: strings.TrimSpace(p.PayToPartyType),
			PayToPartyID:   p.PayToPartyID,
			PayToName:      strings.TrimSpace(p.PayToName),
		}
	}
	return parties, nil
}

// paymentUpdateWhitelist 更新白名单：请求中不在此列的字段忽略并回显
var paymentUpdateWhitelist = map[string]bool{
	"amount":                   true,
	"payment_date":             true,
	"due_date":                 true,
	"description":              true,
	"payment_type":             true,
	"status":                   true,
	"paid_by":                  true,
	"paid_to":                  true,
	"reference":                true,
	"notes":                    true,
	"payment_mode":             true,
	"category":                 true,
	"payer_bank_name":          true,
	"payer_bank_account_no":    true,
	"receiver_bank_name":       true,
	"receiver_bank_account_no": true,
}

// skipWhenEmpty 空字符串视为未提供而非清空
var skipWhenEmpty = map[string]bool{
	"due_date":    true,
	"paid_by":     true,
	"paid_to":     true,
	"description": true,
}

// UpdatePayment 部分更新付款
// 仅白名单字段生效；返回生效字段与被忽略字段两个列表。
func (s *PaymentService) UpdatePayment(dealID, paymentID uint, fields map[string]interface{}) ([]string, []string, error) {
	updates := make(map[string]interface{})
	var applied, notAvailable []string

	for key, value := range fields {
		if !paymentUpdateWhitelist[key] {
			notAvailable = append(notAvailable, key)
			continue
		}

		switch key {
		case "amount":
			amount, ok := CoerceDecimal(value)
			if !ok || !amount.IsPositive() {
				return nil, nil, ErrInvalidAmount
			}
			updates["amount"] = models.NewMoneyFromDecimal(amount)
		case "payment_date":
			raw, _ := value.(string)
			parsed, ok := ParseFlexibleDate(raw)
			if !ok {
				return nil, nil, ErrInvalidPaymentDate
			}
			updates["payment_date"] = models.NewDate(parsed)
		case "due_date":
			raw, _ := value.(string)
			if strings.TrimSpace(raw) == "" {
				continue
			}
			parsed, ok := ParseFlexibleDate(raw)
			if !ok {
				return nil, nil, ErrInvalidDueDate
			}
			updates["due_date"] = models.NewDate(parsed)
		case "status":
			raw, _ := value.(string)
			updates["status"] = normalizeStatus(raw)
		case "payment_type":
			raw, _ := value.(string)
			updates["payment_type"] = normalizePaymentType(raw)
		default:
			raw, ok := value.(string)
			if !ok {
				notAvailable = append(notAvailable, key)
				continue
			}
			if skipWhenEmpty[key] && strings.TrimSpace(raw) == "" {
				continue
			}
			updates[key] = raw
		}
		applied = append(applied, key)
	}

	if len(updates) == 0 {
		return nil, notAvailable, ErrNoUpdatableFields
	}

	rows, err := s.paymentRepo.UpdateFields(dealID, paymentID, updates)
	if err != nil {
		return nil, nil, err
	}
	if rows == 0 {
		return nil, nil, ErrPaymentNotFound
	}
	return applied, notAvailable, nil
}

// DeletePayment 删除付款及其参与方与凭证
// 数据库行在单事务内删除；磁盘文件删除为尽力而为，失败仅记日志。
// 仅创建人或管理员可删除。
func (s *PaymentService) DeletePayment(dealID, paymentID, actorID uint, actorRole string) error {
	payment, err := s.paymentRepo.GetByDealAndID(dealID, paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	if actorRole != constants.RoleAdmin && payment.CreatedBy != actorID {
		return ErrForbidden
	}

	proofs, err := s.proofRepo.ListByPaymentID(paymentID)
	if err != nil {
		return err
	}

	err = s.paymentRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.proofRepo.WithTx(tx).DeleteByPaymentID(paymentID); err != nil {
			return err
		}
		if err := s.partyRepo.WithTx(tx).DeleteByPaymentID(paymentID); err != nil {
			return err
		}
		return s.paymentRepo.WithTx(tx).Delete(paymentID)
	})
	if err != nil {
		return err
	}

	for _, proof := range proofs {
		s.removeStoredFile(proof.FilePath)
	}
	return nil
}

// removeStoredFile 尽力删除上传文件
func (s *PaymentService) removeStoredFile(storedPath string) {
	if storedPath == "" {
		return
	}
	if err := removeUnderDir(s.cfg.Upload.Dir, storedPath); err != nil {
		logger.Warnw("proof_file_remove_failed", "path", storedPath, "error", err)
	}
}

// ListByDeal 列出交易下的付款及参与方明细
func (s *PaymentService) ListByDeal(dealID uint) ([]PaymentWithParties, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}

	payments, err := s.paymentRepo.ListByDealID(dealID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID)
	}
	parties, err := s.partyRepo.ListByPaymentIDs(ids)
	if err != nil {
		return nil, err
	}
	byPayment := make(map[uint][]models.PaymentParty, len(payments))
	for _, party := range parties {
		byPayment[party.PaymentID] = append(byPayment[party.PaymentID], party)
	}

	result := make([]PaymentWithParties, 0, len(payments))
	for _, p := range payments {
		result = append(result, PaymentWithParties{
			Payment: p,
			Parties: byPayment[p.ID],
		})
	}
	return result, nil
}

// GetPayment 获取单笔付款及参与方明细
func (s *PaymentService) GetPayment(dealID, paymentID uint) (*PaymentWithParties, error) {
	payment, err := s.paymentRepo.GetByDealAndID(dealID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	parties, err := s.partyRepo.ListByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}
	return &PaymentWithParties{Payment: *payment, Parties: parties}, nil
}

// AddParty 向已有付款追加参与方份额
// 此入口不做对账检查，调用方自行保证份额合理。
func (s *PaymentService) AddParty(paymentID uint, input PartyShareInput) (*models.PaymentParty, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	amount := decimal.Zero
	if input.Amount != nil {
		amount = input.Amount.Round(2)
	}
	percentage := 0.0
	if input.Percentage != nil {
		percentage, _ = input.Percentage.Float64()
	}

	party := &models.PaymentParty{
		PaymentID:      paymentID,
		PartyType:      normalizePartyType(input.PartyType),
		PartyID:        input.PartyID,
		Amount:         models.NewMoneyFromDecimal(amount),
		Percentage:     percentage,
		Role:           strings.TrimSpace(input.Role),
		PayToPartyType: strings.TrimSpace(input.PayToPartyType),
		PayToPartyID:   input.PayToPartyID,
		PayToName:      strings.TrimSpace(input.PayToName),
	}
	if err := s.partyRepo.Create(party); err != nil {
		return nil, err
	}
	return party, nil
}

// UpdateParty 更新参与方份额
func (s *PaymentService) UpdateParty(paymentID, partyID uint, input PartyShareInput) (*models.PaymentParty, error) {
	party, err := s.partyRepo.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	if party == nil || party.PaymentID != paymentID {
		return nil, ErrPartyNotFound
	}

	if input.PartyType != "" {
		party.PartyType = normalizePartyType(input.PartyType)
	}
	if input.PartyID != nil {
		party.PartyID = input.PartyID
	}
	if input.Amount != nil {
		party.Amount = models.NewMoneyFromDecimal(*input.Amount)
	}
	if input.Percentage != nil {
		party.Percentage, _ = input.Percentage.Float64()
	}
	if input.Role != "" {
		party.Role = strings.TrimSpace(input.Role)
	}
	if input.PayToPartyType != "" {
		party.PayToPartyType = strings.TrimSpace(input.PayToPartyType)
	}
	if input.PayToPartyID != nil {
		party.PayToPartyID = input.PayToPartyID
	}
	if input.PayToName != "" {
		party.PayToName = strings.TrimSpace(input.PayToName)
	}

	if err := s.partyRepo.Save(party); err != nil {
		return nil, err
	}
	return party, nil
}

// DeleteParty 删除参与方份额
func (s *PaymentService) DeleteParty(paymentID, partyID uint) error {
	party, err := s.partyRepo.GetByID(partyID)
	if err != nil {
		return err
	}
	if party == nil || party.PaymentID != paymentID {
		return ErrPartyNotFound
	}
	return s.partyRepo.Delete(partyID)
}

// MarkOverdue 将过期未付的付款标记为逾期，返回受影响行数
func (s *PaymentService) MarkOverdue(now time.Time) (int64, error) {
	return s.paymentRepo.MarkOverdue(now)
}

// normalizePartyType 未知类型归入 other
func normalizePartyType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.PartyTypeOwner:
		return constants.PartyTypeOwner
	case constants.PartyTypeInvestor:
		return constants.PartyTypeInvestor
	case constants.PartyTypeBuyer:
		return constants.PartyTypeBuyer
	default:
		return constants.PartyTypeOther
	}
}

// normalizePaymentType 未知类型归入 other
func normalizePaymentType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.PaymentTypeLandPurchase:
		return constants.PaymentTypeLandPurchase
	case constants.PaymentTypeInvestmentSale:
		return constants.PaymentTypeInvestmentSale
	case constants.PaymentTypeDocumentationLegal:
		return constants.PaymentTypeDocumentationLegal
	case constants.PaymentTypeMaintenanceTaxes:
		return constants.PaymentTypeMaintenanceTaxes
	default:
		return constants.PaymentTypeOther
	}
}

// normalizeStatus 未知状态归入 pending
func normalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.PaymentStatusCompleted:
		return constants.PaymentStatusCompleted
	case constants.PaymentStatusCancelled:
		return constants.PaymentStatusCancelled
	case constants.PaymentStatusFailed:
		return constants.PaymentStatusFailed
	case constants.PaymentStatusOverdue:
		return constants.PaymentStatusOverdue
	default:
		return constants.PaymentStatusPending
	}
}

// CoerceDecimal 将 JSON 解出的任意标量转为 decimal，供服务与处理器共用
func CoerceDecimal(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	default:
		return decimal.Decimal{}, false
	}
}

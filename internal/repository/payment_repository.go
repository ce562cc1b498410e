package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentRepository 付款数据访问接口
type PaymentRepository interface {
	Create(payment *models.Payment) error
	Save(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByDealAndID(dealID, id uint) (*models.Payment, error)
	ListByDealID(dealID uint) ([]models.Payment, error)
	ListByPlanID(planID string) ([]models.Payment, error)
	ListPlanByLegacyKey(dealID uint, parentAmount decimal.Decimal, totalInstallments int) ([]models.Payment, error)
	UpdateFields(dealID, id uint, fields map[string]interface{}) (int64, error)
	Delete(id uint) error
	DeleteByDealID(dealID uint) error
	Ledger(filter LedgerFilter) ([]models.Payment, int64, error)
	MarkOverdue(now time.Time) (int64, error)
	SumByDealID(dealID uint) (map[string]decimal.Decimal, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository GORM 实现
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建付款仓库
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPaymentRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建付款记录
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// Save 保存付款记录
func (r *GormPaymentRepository) Save(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// GetByID 根据 ID 获取付款记录
func (r *GormPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetByDealAndID 根据交易与付款 ID 获取付款记录
func (r *GormPaymentRepository) GetByDealAndID(dealID, id uint) (*models.Payment, error) {
	var payment models.Payment
	result := r.db.Where("deal_id = ? AND id = ?", dealID, id).Limit(1).Find(&payment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &payment, nil
}

// ListByDealID 获取交易下全部付款，按付款日期倒序
func (r *GormPaymentRepository) ListByDealID(dealID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("deal_id = ?", dealID).
		Order("payment_date desc, id desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByPlanID 获取同一分期计划的全部付款，按分期序号排序
func (r *GormPaymentRepository) ListByPlanID(planID string) ([]models.Payment, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return []models.Payment{}, nil
	}
	var payments []models.Payment
	if err := r.db.Where("installment_plan_id = ?", planID).
		Order("installment_number asc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListPlanByLegacyKey 按 (deal_id, parent_amount, total_installments) 匹配分期兄弟记录
// 兼容没有计划 ID 的历史数据。
func (r *GormPaymentRepository) ListPlanByLegacyKey(dealID uint, parentAmount decimal.Decimal, totalInstallments int) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where(
		"deal_id = ? AND is_installment = ? AND parent_amount = ? AND total_installments = ?",
		dealID, true, parentAmount.Round(2), totalInstallments,
	).Order("installment_number asc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateFields 按字段表局部更新，返回受影响行数
func (r *GormPaymentRepository) UpdateFields(dealID, id uint, fields map[string]interface{}) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Payment{}).
		Where("deal_id = ? AND id = ?", dealID, id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// Delete 删除付款记录
func (r *GormPaymentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Payment{}, id).Error
}

// DeleteByDealID 删除交易下全部付款
func (r *GormPaymentRepository) DeleteByDealID(dealID uint) error {
	return r.db.Where("deal_id = ?", dealID).Delete(&models.Payment{}).Error
}

// Ledger 跨交易付款台账查询
func (r *GormPaymentRepository) Ledger(filter LedgerFilter) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})

	if filter.DealID != 0 {
		query = query.Where("payments.deal_id = ?", filter.DealID)
	}
	if filter.PaymentMode != "" {
		query = query.Where("payments.payment_mode = ?", filter.PaymentMode)
	}
	if filter.PaymentType != "" {
		query = query.Where("payments.payment_type = ?", filter.PaymentType)
	}
	if filter.Status != "" {
		query = query.Where("payments.status = ?", filter.Status)
	}
	if filter.PartyType != "" {
		if filter.PartyID != 0 {
			query = query.Where(
				"(payments.party_type = ? AND payments.party_id = ?) OR EXISTS (SELECT 1 FROM payment_parties pp WHERE pp.payment_id = payments.id AND pp.party_type = ? AND pp.party_id = ?)",
				filter.PartyType, filter.PartyID, filter.PartyType, filter.PartyID,
			)
		} else {
			query = query.Where(
				"payments.party_type = ? OR EXISTS (SELECT 1 FROM payment_parties pp WHERE pp.payment_id = payments.id AND pp.party_type = ?)",
				filter.PartyType, filter.PartyType,
			)
		}
	}
	if search := strings.TrimSpace(filter.PersonSearch); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			`EXISTS (SELECT 1 FROM payment_parties pp JOIN owners o ON o.id = pp.party_id WHERE pp.payment_id = payments.id AND pp.party_type = ? AND o.name LIKE ?)
			OR EXISTS (SELECT 1 FROM payment_parties pp JOIN investors i ON i.id = pp.party_id WHERE pp.payment_id = payments.id AND pp.party_type = ? AND i.investor_name LIKE ?)
			OR EXISTS (SELECT 1 FROM payment_parties pp JOIN buyers b ON b.id = pp.party_id WHERE pp.payment_id = payments.id AND pp.party_type = ? AND b.name LIKE ?)`,
			constants.PartyTypeOwner, like,
			constants.PartyTypeInvestor, like,
			constants.PartyTypeBuyer, like,
		)
	}
	if filter.StartDate != nil {
		query = query.Where("payments.payment_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("payments.payment_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var payments []models.Payment
	if err := query.Order("payments.payment_date desc, payments.id desc").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// MarkOverdue 将逾期未付的付款标记为 overdue，返回受影响行数
func (r *GormPaymentRepository) MarkOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Payment{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", constants.PaymentStatusPending, now).
		Update("status", constants.PaymentStatusOverdue)
	return result.RowsAffected, result.Error
}

// SumByDealID 按付款方式聚合交易付款总额
func (r *GormPaymentRepository) SumByDealID(dealID uint) (map[string]decimal.Decimal, error) {
	type row struct {
		PaymentMode string
		Total       decimal.Decimal
	}
	var rows []row
	if err := r.db.Model(&models.Payment{}).
		Select("payment_mode, COALESCE(SUM(amount), 0) AS total").
		Where("deal_id = ?", dealID).
		Group("payment_mode").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal, len(rows))
	for _, item := range rows {
		mode := item.PaymentMode
		if mode == "" {
			mode = "unspecified"
		}
		sums[mode] = item.Total
	}
	return sums, nil
}

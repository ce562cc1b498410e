package repository

import (
	"errors"

	"github.com/landdesk/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseRepository 支出数据访问接口
type ExpenseRepository interface {
	Create(expense *models.Expense) error
	GetByID(id uint) (*models.Expense, error)
	ListByDealID(dealID uint) ([]models.Expense, error)
	SumByDealID(dealID uint) (decimal.Decimal, error)
	Delete(id uint) error
	DeleteByDealID(dealID uint) error
	WithTx(tx *gorm.DB) *GormExpenseRepository
}

// GormExpenseRepository GORM 实现
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository 创建支出仓库
func NewExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// WithTx 绑定事务
func (r *GormExpenseRepository) WithTx(tx *gorm.DB) *GormExpenseRepository {
	if tx == nil {
		return r
	}
	return &GormExpenseRepository{db: tx}
}

// Create 创建支出记录
func (r *GormExpenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// GetByID 根据 ID 获取支出记录
func (r *GormExpenseRepository) GetByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

// ListByDealID 获取交易下的支出列表
func (r *GormExpenseRepository) ListByDealID(dealID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Where("deal_id = ?", dealID).Order("expense_date desc, id desc").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// SumByDealID 汇总交易支出总额
func (r *GormExpenseRepository) SumByDealID(dealID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("deal_id = ?", dealID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Delete 删除支出记录
func (r *GormExpenseRepository) Delete(id uint) error {
	return r.db.Delete(&models.Expense{}, id).Error
}

// DeleteByDealID 删除交易下全部支出
func (r *GormExpenseRepository) DeleteByDealID(dealID uint) error {
	return r.db.Where("deal_id = ?", dealID).Delete(&models.Expense{}).Error
}

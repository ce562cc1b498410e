package repository

import (
	"errors"
	"time"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"

	"gorm.io/gorm"
)

// PaymentReminderRepository 付款提醒数据访问接口
type PaymentReminderRepository interface {
	Create(reminder *models.PaymentReminder) error
	Save(reminder *models.PaymentReminder) error
	GetByID(id uint) (*models.PaymentReminder, error)
	List(filter ReminderListFilter) ([]models.PaymentReminder, int64, error)
	ListByDealID(dealID uint) ([]models.PaymentReminder, error)
	UpdateStatus(id uint, status string) (int64, error)
	MarkOverdue(now time.Time) (int64, error)
	Delete(id uint) error
	DeleteByDealID(dealID uint) error
	WithTx(tx *gorm.DB) *GormPaymentReminderRepository
}

// GormPaymentReminderRepository GORM 实现
type GormPaymentReminderRepository struct {
	db *gorm.DB
}

// NewPaymentReminderRepository 创建付款提醒仓库
func NewPaymentReminderRepository(db *gorm.DB) *GormPaymentReminderRepository {
	return &GormPaymentReminderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentReminderRepository) WithTx(tx *gorm.DB) *GormPaymentReminderRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentReminderRepository{db: tx}
}

// Create 创建付款提醒
func (r *GormPaymentReminderRepository) Create(reminder *models.PaymentReminder) error {
	return r.db.Create(reminder).Error
}

// Save 保存付款提醒
func (r *GormPaymentReminderRepository) Save(reminder *models.PaymentReminder) error {
	return r.db.Save(reminder).Error
}

// GetByID 根据 ID 获取付款提醒
func (r *GormPaymentReminderRepository) GetByID(id uint) (*models.PaymentReminder, error) {
	var reminder models.PaymentReminder
	if err := r.db.First(&reminder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

// List 分页查询付款提醒
func (r *GormPaymentReminderRepository) List(filter ReminderListFilter) ([]models.PaymentReminder, int64, error) {
	query := r.db.Model(&models.PaymentReminder{})

	if filter.DealID != 0 {
		query = query.Where("deal_id = ?", filter.DealID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var reminders []models.PaymentReminder
	if err := query.Order("reminder_date asc").Find(&reminders).Error; err != nil {
		return nil, 0, err
	}
	return reminders, total, nil
}

// ListByDealID 获取交易下全部付款提醒，按提醒日期升序
func (r *GormPaymentReminderRepository) ListByDealID(dealID uint) ([]models.PaymentReminder, error) {
	var reminders []models.PaymentReminder
	if err := r.db.Where("deal_id = ?", dealID).Order("reminder_date asc").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// UpdateStatus 更新提醒状态，返回受影响行数
func (r *GormPaymentReminderRepository) UpdateStatus(id uint, status string) (int64, error) {
	result := r.db.Model(&models.PaymentReminder{}).Where("id = ?", id).Update("status", status)
	return result.RowsAffected, result.Error
}

// MarkOverdue 将到期未处理的提醒标记为 overdue，返回受影响行数
func (r *GormPaymentReminderRepository) MarkOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.PaymentReminder{}).
		Where("status = ? AND reminder_date < ?", constants.ReminderStatusPending, now).
		Update("status", constants.ReminderStatusOverdue)
	return result.RowsAffected, result.Error
}

// Delete 删除付款提醒
func (r *GormPaymentReminderRepository) Delete(id uint) error {
	return r.db.Delete(&models.PaymentReminder{}, id).Error
}

// DeleteByDealID 删除交易下全部付款提醒
func (r *GormPaymentReminderRepository) DeleteByDealID(dealID uint) error {
	return r.db.Where("deal_id = ?", dealID).Delete(&models.PaymentReminder{}).Error
}

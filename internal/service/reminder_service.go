package service

import (
	"strings"
	"time"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"github.com/shopspring/decimal"
)

// ReminderService 付款提醒服务
type ReminderService struct {
	dealRepo     repository.DealRepository
	paymentRepo  repository.PaymentRepository
	reminderRepo repository.PaymentReminderRepository
}

// NewReminderService 创建付款提醒服务实例
func NewReminderService(
	dealRepo repository.DealRepository,
	paymentRepo repository.PaymentRepository,
	reminderRepo repository.PaymentReminderRepository,
) *ReminderService {
	return &ReminderService{
		dealRepo:     dealRepo,
		paymentRepo:  paymentRepo,
		reminderRepo: reminderRepo,
	}
}

// ReminderInput 提醒录入参数
type ReminderInput struct {
	PaymentID    *uint
	Description  string
	DueDate      string
	ReminderDate string
	Amount       *decimal.Decimal
	Priority     string
	Notes        string
	CreatedBy    uint
}

// CreateReminder 创建付款提醒
func (s *ReminderService) CreateReminder(dealID uint, input ReminderInput) (*models.PaymentReminder, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}

	reminderDate, ok := ParseFlexibleDate(input.ReminderDate)
	if !ok {
		return nil, ErrInvalidReminderDate
	}

	var dueDate *time.Time
	if raw := strings.TrimSpace(input.DueDate); raw != "" {
		parsed, ok := ParseFlexibleDate(raw)
		if !ok {
			return nil, ErrInvalidDueDate
		}
		dueDate = &parsed
	}

	if input.PaymentID != nil {
		payment, err := s.paymentRepo.GetByDealAndID(dealID, *input.PaymentID)
		if err != nil {
			return nil, err
		}
		if payment == nil {
			return nil, ErrPaymentNotFound
		}
	}

	reminder := &models.PaymentReminder{
		DealID:       dealID,
		PaymentID:    input.PaymentID,
		Description:  input.Description,
		DueDate:      dueDate,
		ReminderDate: reminderDate,
		Priority:     normalizeReminderPriority(input.Priority),
		Status:       constants.ReminderStatusPending,
		Notes:        input.Notes,
		CreatedBy:    input.CreatedBy,
	}
	if input.Amount != nil {
		reminder.Amount = models.NewMoneyFromDecimal(*input.Amount)
	}
	if err := s.reminderRepo.Create(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// ListByDeal 列出交易下的提醒，按提醒日期升序
func (s *ReminderService) ListByDeal(dealID uint) ([]models.PaymentReminder, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return s.reminderRepo.ListByDealID(dealID)
}

// List 分页过滤查询提醒
func (s *ReminderService) List(filter repository.ReminderListFilter) ([]models.PaymentReminder, int64, error) {
	return s.reminderRepo.List(filter)
}

// UpdateStatus 更新提醒状态，仅允许 pending/completed/overdue
func (s *ReminderService) UpdateStatus(dealID, reminderID uint, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case constants.ReminderStatusPending, constants.ReminderStatusCompleted, constants.ReminderStatusOverdue:
	default:
		return ErrInvalidReminderStatus
	}

	reminder, err := s.reminderRepo.GetByID(reminderID)
	if err != nil {
		return err
	}
	if reminder == nil || reminder.DealID != dealID {
		return ErrReminderNotFound
	}

	rows, err := s.reminderRepo.UpdateStatus(reminderID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReminderNotFound
	}
	return nil
}

// UpdateReminder 更新提醒内容（空字段跳过）
func (s *ReminderService) UpdateReminder(dealID, reminderID uint, input ReminderInput) (*models.PaymentReminder, error) {
	reminder, err := s.reminderRepo.GetByID(reminderID)
	if err != nil {
		return nil, err
	}
	if reminder == nil || reminder.DealID != dealID {
		return nil, ErrReminderNotFound
	}

	if v := strings.TrimSpace(input.Description); v != "" {
		reminder.Description = v
	}
	if raw := strings.TrimSpace(input.ReminderDate); raw != "" {
		parsed, ok := ParseFlexibleDate(raw)
		if !ok {
			return nil, ErrInvalidReminderDate
		}
		reminder.ReminderDate = parsed
	}
	if raw := strings.TrimSpace(input.DueDate); raw != "" {
		parsed, ok := ParseFlexibleDate(raw)
		if !ok {
			return nil, ErrInvalidDueDate
		}
		reminder.DueDate = &parsed
	}
	if input.Amount != nil {
		reminder.Amount = models.NewMoneyFromDecimal(*input.Amount)
	}
	if v := strings.TrimSpace(input.Priority); v != "" {
		reminder.Priority = normalizeReminderPriority(v)
	}
	if v := strings.TrimSpace(input.Notes); v != "" {
		reminder.Notes = v
	}

	if err := s.reminderRepo.Save(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// DeleteReminder 删除提醒
func (s *ReminderService) DeleteReminder(dealID, reminderID uint) error {
	reminder, err := s.reminderRepo.GetByID(reminderID)
	if err != nil {
		return err
	}
	if reminder == nil || reminder.DealID != dealID {
		return ErrReminderNotFound
	}
	return s.reminderRepo.Delete(reminderID)
}

// MarkOverdue 将提醒日期已过的 pending 提醒置为 overdue
func (s *ReminderService) MarkOverdue(now time.Time) (int64, error) {
	return s.reminderRepo.MarkOverdue(now)
}

// normalizeReminderPriority 未知优先级归入 medium
func normalizeReminderPriority(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.ReminderPriorityLow:
		return constants.ReminderPriorityLow
	case constants.ReminderPriorityHigh:
		return constants.ReminderPriorityHigh
	default:
		return constants.ReminderPriorityMedium
	}
}

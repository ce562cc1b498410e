package models

import "time"

// PaymentReminder 付款提醒
type PaymentReminder struct {
	ID           uint       `gorm:"primarykey" json:"id"`                       // 主键
	DealID       uint       `gorm:"index;not null" json:"deal_id"`              // 所属交易
	PaymentID    *uint      `gorm:"index" json:"payment_id"`                    // 关联付款（可空）
	Description  string     `gorm:"type:text" json:"description"`               // 说明
	DueDate      *time.Time `gorm:"index" json:"due_date"`                      // 到期日期
	ReminderDate time.Time  `gorm:"index;not null" json:"reminder_date"`        // 提醒日期
	Amount       Money      `gorm:"type:decimal(20,2);default:0" json:"amount"` // 金额
	Priority     string     `gorm:"index;default:'medium'" json:"priority"`     // 优先级（low/medium/high）
	Status       string     `gorm:"index;default:'pending'" json:"status"`      // 状态（pending/completed/overdue）
	Notes        string     `gorm:"type:text" json:"notes"`                     // 备注
	CreatedBy    uint       `gorm:"index" json:"created_by"`                    // 创建人
	SentAt       *time.Time `json:"sent_at"`                                    // 通知发出时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                 // 更新时间
}

// TableName 指定表名
func (PaymentReminder) TableName() string {
	return "payment_reminders"
}

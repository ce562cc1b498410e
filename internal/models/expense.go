package models

import "time"

// Expense 交易相关支出
type Expense struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                      // 主键
	DealID             uint       `gorm:"index;not null" json:"deal_id"`             // 所属交易
	ExpenseType        string     `gorm:"index" json:"expense_type"`                 // 支出类型
	ExpenseDescription string     `gorm:"type:text" json:"expense_description"`      // 支出说明
	Amount             Money      `gorm:"type:decimal(20,2);not null" json:"amount"` // 金额
	PaidBy             string     `gorm:"default:''" json:"paid_by"`                 // 支付人
	ExpenseDate        *time.Time `gorm:"index" json:"expense_date"`                 // 支出日期
	ReceiptNumber      string     `gorm:"default:''" json:"receipt_number"`          // 收据编号
	CreatedBy          uint       `gorm:"index" json:"created_by"`                   // 创建人
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`                   // 创建时间
}

// TableName 指定表名
func (Expense) TableName() string {
	return "expenses"
}

package models

import "time"

// Payment 付款记录（一次资金流转）
// 说明：分期付款由同一 installment_plan_id 串联；历史数据无计划ID，
// 仍可通过 (deal_id, parent_amount, total_installments) 匹配同计划兄弟记录。
type Payment struct {
	ID                    uint      `gorm:"primarykey" json:"id"`                              // 主键
	DealID                uint      `gorm:"index;not null" json:"deal_id"`                     // 所属交易
	PartyType             string    `gorm:"default:'other'" json:"party_type"`                 // 主参与方类型
	PartyID               *uint     `gorm:"index" json:"party_id"`                             // 主参与方ID
	Amount                Money     `gorm:"type:decimal(20,2);not null" json:"amount"`         // 付款总额
	Currency              string    `gorm:"default:'INR'" json:"currency"`                     // 币种
	PaymentDate           Date      `gorm:"type:date;index;not null" json:"payment_date"`      // 付款日期
	DueDate               *Date     `gorm:"type:date;index" json:"due_date"`                   // 到期日期
	PaymentMode           string    `gorm:"index;default:''" json:"payment_mode"`              // 付款方式
	Reference             string    `gorm:"default:''" json:"reference"`                       // 凭证号
	Notes                 string    `gorm:"type:text" json:"notes"`                            // 备注
	Description           string    `gorm:"type:text" json:"description"`                      // 描述
	Category              string    `gorm:"default:''" json:"category"`                        // 分类
	Status                string    `gorm:"index;default:'pending'" json:"status"`             // 状态
	PaymentType           string    `gorm:"index;default:'other'" json:"payment_type"`         // 付款类型
	PaidBy                string    `gorm:"type:varchar(64);default:''" json:"paid_by"`        // 付款人标记（如 owner_3）
	PaidTo                string    `gorm:"type:varchar(64);default:''" json:"paid_to"`        // 收款人标记
	CreatedBy             uint      `gorm:"index" json:"created_by"`                           // 创建人
	IsInstallment         bool      `gorm:"index;default:false" json:"is_installment"`         // 是否分期
	InstallmentNumber     int       `gorm:"default:0" json:"installment_number"`               // 分期序号（1 起）
	TotalInstallments     int       `gorm:"default:0" json:"total_installments"`               // 分期总数
	ParentAmount          Money     `gorm:"type:decimal(20,2);default:0" json:"parent_amount"` // 分期前总额
	InstallmentPlanID     string    `gorm:"type:varchar(36);index" json:"installment_plan_id"` // 分期计划ID
	PayerBankName         string    `gorm:"default:''" json:"payer_bank_name"`                 // 付款方银行
	PayerBankAccountNo    string    `gorm:"default:''" json:"payer_bank_account_no"`           // 付款方账号
	ReceiverBankName      string    `gorm:"default:''" json:"receiver_bank_name"`              // 收款方银行
	ReceiverBankAccountNo string    `gorm:"default:''" json:"receiver_bank_account_no"`        // 收款方账号
	CreatedAt             time.Time `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt             time.Time `gorm:"index" json:"updated_at"`                           // 更新时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}

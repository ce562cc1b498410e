package models

import "time"

// PaymentParty 付款参与方份额
// 付款删除时同事务级联删除。
type PaymentParty struct {
	ID             uint      `gorm:"primarykey" json:"id"`                          // 主键
	PaymentID      uint      `gorm:"index;not null" json:"payment_id"`              // 所属付款
	PartyType      string    `gorm:"default:'other'" json:"party_type"`             // 参与方类型
	PartyID        *uint     `gorm:"index" json:"party_id"`                         // 参与方ID
	Amount         Money     `gorm:"type:decimal(20,2);default:0" json:"amount"`    // 份额金额
	Percentage     float64   `gorm:"type:decimal(6,2);default:0" json:"percentage"` // 份额百分比
	Role           string    `gorm:"default:''" json:"role"`                        // 角色（payer/payee/recipient）
	PayToPartyType string    `gorm:"default:''" json:"pay_to_party_type"`           // 直接转账对象类型
	PayToPartyID   *uint     `json:"pay_to_party_id"`                               // 直接转账对象ID
	PayToName      string    `gorm:"default:''" json:"pay_to_name"`                 // 直接转账对象名称
	CreatedAt      time.Time `json:"created_at"`                                    // 创建时间
}

// TableName 指定表名
func (PaymentParty) TableName() string {
	return "payment_parties"
}

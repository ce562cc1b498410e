package models

import "time"

// Investor 交易投资人
type Investor struct {
	ID                   uint      `gorm:"primarykey" json:"id"`                                     // 主键
	DealID               uint      `gorm:"index;not null" json:"deal_id"`                            // 所属交易
	InvestorName         string    `gorm:"index;not null" json:"investor_name"`                      // 姓名
	InvestmentAmount     Money     `gorm:"type:decimal(20,2);default:0" json:"investment_amount"`    // 投资金额
	InvestmentPercentage float64   `gorm:"type:decimal(6,2);default:0" json:"investment_percentage"` // 投资占比
	Mobile               string    `gorm:"default:''" json:"mobile"`                                 // 手机号
	Email                string    `gorm:"default:''" json:"email"`                                  // 邮箱
	AadharCard           string    `gorm:"default:''" json:"aadhar_card"`                            // Aadhar 证件号
	PanCard              string    `gorm:"default:''" json:"pan_card"`                               // PAN 证件号
	Address              string    `gorm:"type:text" json:"address"`                                 // 地址
	Starred              bool      `gorm:"index;default:false" json:"starred"`                       // 标星
	CreatedAt            time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt            time.Time `json:"updated_at"`                                               // 更新时间
}

// TableName 指定表名
func (Investor) TableName() string {
	return "investors"
}

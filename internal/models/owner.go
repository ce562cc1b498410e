package models

import "time"

// Owner 土地原持有人
type Owner struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                  // 主键
	DealID           uint      `gorm:"index;not null" json:"deal_id"`                         // 所属交易
	Name             string    `gorm:"index;not null" json:"name"`                            // 姓名
	Mobile           string    `gorm:"default:''" json:"mobile"`                              // 手机号
	Email            string    `gorm:"default:''" json:"email"`                               // 邮箱
	AadharCard       string    `gorm:"default:''" json:"aadhar_card"`                         // Aadhar 证件号
	PanCard          string    `gorm:"default:''" json:"pan_card"`                            // PAN 证件号
	Address          string    `gorm:"type:text" json:"address"`                              // 地址
	PercentageShare  float64   `gorm:"type:decimal(6,2);default:0" json:"percentage_share"`   // 份额百分比
	InvestmentAmount Money     `gorm:"type:decimal(20,2);default:0" json:"investment_amount"` // 投入金额
	Starred          bool      `gorm:"index;default:false" json:"starred"`                    // 标星
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt        time.Time `json:"updated_at"`                                            // 更新时间
}

// TableName 指定表名
func (Owner) TableName() string {
	return "owners"
}

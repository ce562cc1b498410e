package models

import "time"

// Buyer 土地买受人
type Buyer struct {
	ID         uint      `gorm:"primarykey" json:"id"`          // 主键
	DealID     uint      `gorm:"index;not null" json:"deal_id"` // 所属交易
	Name       string    `gorm:"index;not null" json:"name"`    // 姓名
	Mobile     string    `gorm:"default:''" json:"mobile"`      // 手机号
	Email      string    `gorm:"default:''" json:"email"`       // 邮箱
	AadharCard string    `gorm:"default:''" json:"aadhar_card"` // Aadhar 证件号
	PanCard    string    `gorm:"default:''" json:"pan_card"`    // PAN 证件号
	Address    string    `gorm:"type:text" json:"address"`      // 地址
	CreatedAt  time.Time `gorm:"index" json:"created_at"`       // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                    // 更新时间
}

// TableName 指定表名
func (Buyer) TableName() string {
	return "buyers"
}

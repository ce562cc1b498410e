package models

import (
	"time"

	"gorm.io/gorm"
)

// Deal 土地交易主记录
type Deal struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                // 主键
	ProjectName      string         `gorm:"index;not null" json:"project_name"`                  // 项目名称
	SurveyNumber     string         `gorm:"index" json:"survey_number"`                          // 测绘编号
	PurchaseDate     *time.Time     `gorm:"index" json:"purchase_date"`                          // 购入日期
	Taluka           string         `json:"taluka"`                                              // 乡镇
	Village          string         `json:"village"`                                             // 村落
	TotalArea        float64        `gorm:"type:decimal(12,2);default:0" json:"total_area"`      // 总面积
	AreaUnit         string         `gorm:"default:''" json:"area_unit"`                         // 面积单位
	PurchaseAmount   Money          `gorm:"type:decimal(20,2);default:0" json:"purchase_amount"` // 购入金额
	SellingAmount    Money          `gorm:"type:decimal(20,2);default:0" json:"selling_amount"`  // 出售金额
	Status           string         `gorm:"index;default:'open'" json:"status"`                  // 交易状态
	PaymentMode      string         `gorm:"default:''" json:"payment_mode"`                      // 默认付款方式
	ProfitAllocation string         `gorm:"type:text" json:"profit_allocation"`                  // 利润分配说明
	CreatedBy        uint           `gorm:"index" json:"created_by"`                             // 创建人
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (Deal) TableName() string {
	return "deals"
}

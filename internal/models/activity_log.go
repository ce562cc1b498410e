package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog 操作审计日志
// 说明：写入为尽力而为，失败不影响业务请求。
type ActivityLog struct {
	ID         uint           `gorm:"primarykey" json:"id"`               // 主键
	UserID     uint           `gorm:"index" json:"user_id"`               // 操作人
	Action     string         `gorm:"index;not null" json:"action"`       // 动作（CREATE/UPDATE/DELETE/LOGIN）
	EntityType string         `gorm:"index;not null" json:"entity_type"`  // 实体类型
	EntityID   uint           `gorm:"index" json:"entity_id"`             // 实体ID
	EntityName string         `gorm:"default:''" json:"entity_name"`      // 实体名称快照
	Changes    datatypes.JSON `gorm:"type:json" json:"changes"`           // 变更明细
	IPAddress  string         `gorm:"type:varchar(64)" json:"ip_address"` // 客户端IP
	UserAgent  string         `gorm:"type:text" json:"user_agent"`        // 客户端UA
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`            // 记录时间
}

// TableName 指定表名
func (ActivityLog) TableName() string {
	return "activity_logs"
}

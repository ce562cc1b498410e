package models

import (
	"time"

	"gorm.io/gorm"
)

// User 后台用户表
// 说明：password 字段可能存有四种历史格式（bcrypt / werkzeug / md5 / 明文），
// 校验时按优先级逐个尝试，见 service.PasswordVerifier。
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // 主键
	Username     string         `gorm:"uniqueIndex;not null" json:"username"` // 登录名
	Password     string         `gorm:"not null" json:"-"`                    // 密码（历史格式混存，不返回给前端）
	FullName     string         `gorm:"default:''" json:"full_name"`          // 姓名
	Role         string         `gorm:"index;default:'user'" json:"role"`     // 角色（admin/user）
	Status       string         `gorm:"default:'active'" json:"status"`       // 账号状态
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`          // Token 版本（用于全量失效）
	LastLoginAt  *time.Time     `json:"last_login_at"`                        // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

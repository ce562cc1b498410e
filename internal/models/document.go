package models

import "time"

// Document 交易/参与方文档元数据（文件落盘，数据库存路径）
type Document struct {
	ID           uint      `gorm:"primarykey" json:"id"`          // 主键
	DealID       uint      `gorm:"index;not null" json:"deal_id"` // 所属交易
	OwnerID      *uint     `gorm:"index" json:"owner_id"`         // 归属持有人（可空）
	InvestorID   *uint     `gorm:"index" json:"investor_id"`      // 归属投资人（可空）
	DocumentType string    `gorm:"index" json:"document_type"`    // 文档类型
	DocumentName string    `gorm:"not null" json:"document_name"` // 原始文件名
	FilePath     string    `gorm:"not null" json:"file_path"`     // 存储路径
	FileSize     int64     `gorm:"default:0" json:"file_size"`    // 文件大小（字节）
	UploadedBy   uint      `gorm:"index" json:"uploaded_by"`      // 上传人
	CreatedAt    time.Time `gorm:"index" json:"created_at"`       // 上传时间
}

// TableName 指定表名
func (Document) TableName() string {
	return "documents"
}

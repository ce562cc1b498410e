package models

import "time"

// PaymentProof 付款凭证附件（收据图片/PDF）
type PaymentProof struct {
	ID         uint      `gorm:"primarykey" json:"id"`             // 主键
	PaymentID  uint      `gorm:"index;not null" json:"payment_id"` // 所属付款
	DealID     uint      `gorm:"index;not null" json:"deal_id"`    // 所属交易
	FilePath   string    `gorm:"not null" json:"file_path"`        // 存储路径（相对 uploads）
	FileName   string    `gorm:"not null" json:"file_name"`        // 原始文件名
	DocType    string    `gorm:"default:''" json:"doc_type"`       // 凭证类型（receipt/cheque/...）
	FileSize   int64     `gorm:"default:0" json:"file_size"`       // 文件大小（字节）
	UploadedBy uint      `gorm:"index" json:"uploaded_by"`         // 上传人
	CreatedAt  time.Time `gorm:"index" json:"created_at"`          // 上传时间
}

// TableName 指定表名
func (PaymentProof) TableName() string {
	return "payment_proofs"
}

package repository

import (
	"errors"

	"github.com/landdesk/internal/models"

	"gorm.io/gorm"
)

// PaymentProofRepository 付款凭证数据访问接口
type PaymentProofRepository interface {
	Create(proof *models.PaymentProof) error
	GetByID(id uint) (*models.PaymentProof, error)
	ListByPaymentID(paymentID uint) ([]models.PaymentProof, error)
	Delete(id uint) error
	DeleteByPaymentID(paymentID uint) error
	WithTx(tx *gorm.DB) *GormPaymentProofRepository
}

// GormPaymentProofRepository GORM 实现
type GormPaymentProofRepository struct {
	db *gorm.DB
}

// NewPaymentProofRepository 创建付款凭证仓库
func NewPaymentProofRepository(db *gorm.DB) *GormPaymentProofRepository {
	return &GormPaymentProofRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentProofRepository) WithTx(tx *gorm.DB) *GormPaymentProofRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentProofRepository{db: tx}
}

// Create 创建凭证记录
func (r *GormPaymentProofRepository) Create(proof *models.PaymentProof) error {
	return r.db.Create(proof).Error
}

// GetByID 根据 ID 获取凭证记录
func (r *GormPaymentProofRepository) GetByID(id uint) (*models.PaymentProof, error) {
	var proof models.PaymentProof
	if err := r.db.First(&proof, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &proof, nil
}

// ListByPaymentID 获取付款的凭证列表
func (r *GormPaymentProofRepository) ListByPaymentID(paymentID uint) ([]models.PaymentProof, error) {
	var proofs []models.PaymentProof
	if err := r.db.Where("payment_id = ?", paymentID).Order("id asc").Find(&proofs).Error; err != nil {
		return nil, err
	}
	return proofs, nil
}

// Delete 删除凭证记录
func (r *GormPaymentProofRepository) Delete(id uint) error {
	return r.db.Delete(&models.PaymentProof{}, id).Error
}

// DeleteByPaymentID 删除付款的全部凭证记录
func (r *GormPaymentProofRepository) DeleteByPaymentID(paymentID uint) error {
	return r.db.Where("payment_id = ?", paymentID).Delete(&models.PaymentProof{}).Error
}

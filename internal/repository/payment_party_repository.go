package repository

import (
	"errors"

	"github.com/landdesk/internal/models"

	"gorm.io/gorm"
)

// PaymentPartyRepository 付款参与方数据访问接口
type PaymentPartyRepository interface {
	Create(party *models.PaymentParty) error
	Save(party *models.PaymentParty) error
	GetByID(id uint) (*models.PaymentParty, error)
	ListByPaymentID(paymentID uint) ([]models.PaymentParty, error)
	ListByPaymentIDs(paymentIDs []uint) ([]models.PaymentParty, error)
	Delete(id uint) error
	DeleteByPaymentID(paymentID uint) error
	WithTx(tx *gorm.DB) *GormPaymentPartyRepository
}

// GormPaymentPartyRepository GORM 实现
type GormPaymentPartyRepository struct {
	db *gorm.DB
}

// NewPaymentPartyRepository 创建付款参与方仓库
func NewPaymentPartyRepository(db *gorm.DB) *GormPaymentPartyRepository {
	return &GormPaymentPartyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentPartyRepository) WithTx(tx *gorm.DB) *GormPaymentPartyRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentPartyRepository{db: tx}
}

// Create 创建参与方记录
func (r *GormPaymentPartyRepository) Create(party *models.PaymentParty) error {
	return r.db.Create(party).Error
}

// Save 保存参与方记录
func (r *GormPaymentPartyRepository) Save(party *models.PaymentParty) error {
	return r.db.Save(party).Error
}

// GetByID 根据 ID 获取参与方记录
func (r *GormPaymentPartyRepository) GetByID(id uint) (*models.PaymentParty, error) {
	var party models.PaymentParty
	if err := r.db.First(&party, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &party, nil
}

// ListByPaymentID 获取付款的参与方列表
func (r *GormPaymentPartyRepository) ListByPaymentID(paymentID uint) ([]models.PaymentParty, error) {
	var parties []models.PaymentParty
	if err := r.db.Where("payment_id = ?", paymentID).Order("id asc").Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

// ListByPaymentIDs 批量获取多笔付款的参与方
func (r *GormPaymentPartyRepository) ListByPaymentIDs(paymentIDs []uint) ([]models.PaymentParty, error) {
	if len(paymentIDs) == 0 {
		return []models.PaymentParty{}, nil
	}
	var parties []models.PaymentParty
	if err := r.db.Where("payment_id IN ?", paymentIDs).Order("id asc").Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

// Delete 删除参与方记录
func (r *GormPaymentPartyRepository) Delete(id uint) error {
	return r.db.Delete(&models.PaymentParty{}, id).Error
}

// DeleteByPaymentID 删除付款的全部参与方
func (r *GormPaymentPartyRepository) DeleteByPaymentID(paymentID uint) error {
	return r.db.Where("payment_id = ?", paymentID).Delete(&models.PaymentParty{}).Error
}

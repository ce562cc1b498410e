package repository

import (
	"errors"

	"github.com/landdesk/internal/models"

	"gorm.io/gorm"
)

// BuyerRepository 买受人数据访问接口
type BuyerRepository interface {
	Create(buyer *models.Buyer) error
	Save(buyer *models.Buyer) error
	GetByID(id uint) (*models.Buyer, error)
	ListByDealID(dealID uint) ([]models.Buyer, error)
	NamesByIDs(ids []uint) (map[uint]string, error)
	Delete(id uint) error
	DeleteByDealID(dealID uint) error
	WithTx(tx *gorm.DB) *GormBuyerRepository
}

// GormBuyerRepository GORM 实现
type GormBuyerRepository struct {
	db *gorm.DB
}

// NewBuyerRepository 创建买受人仓库
func NewBuyerRepository(db *gorm.DB) *GormBuyerRepository {
	return &GormBuyerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBuyerRepository) WithTx(tx *gorm.DB) *GormBuyerRepository {
	if tx == nil {
		return r
	}
	return &GormBuyerRepository{db: tx}
}

// Create 创建买受人
func (r *GormBuyerRepository) Create(buyer *models.Buyer) error {
	return r.db.Create(buyer).Error
}

// Save 保存买受人
func (r *GormBuyerRepository) Save(buyer *models.Buyer) error {
	return r.db.Save(buyer).Error
}

// GetByID 根据 ID 获取买受人
func (r *GormBuyerRepository) GetByID(id uint) (*models.Buyer, error) {
	var buyer models.Buyer
	if err := r.db.First(&buyer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &buyer, nil
}

// ListByDealID 获取交易下的买受人列表
func (r *GormBuyerRepository) ListByDealID(dealID uint) ([]models.Buyer, error) {
	var buyers []models.Buyer
	if err := r.db.Where("deal_id = ?", dealID).Order("id asc").Find(&buyers).Error; err != nil {
		return nil, err
	}
	return buyers, nil
}

// NamesByIDs 批量获取买受人姓名
func (r *GormBuyerRepository) NamesByIDs(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var buyers []models.Buyer
	if err := r.db.Select("id, name").Where("id IN ?", ids).Find(&buyers).Error; err != nil {
		return nil, err
	}
	for _, buyer := range buyers {
		names[buyer.ID] = buyer.Name
	}
	return names, nil
}

// Delete 删除买受人
func (r *GormBuyerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Buyer{}, id).Error
}

// DeleteByDealID 删除交易下全部买受人
func (r *GormBuyerRepository) DeleteByDealID(dealID uint) error {
	return r.db.Where("deal_id = ?", dealID).Delete(&models.Buyer{}).Error
}

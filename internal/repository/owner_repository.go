package repository

import (
	"errors"

	"github.com/landdesk/internal/models"

	"gorm.io/gorm"
)

// OwnerRepository 持有人数据访问接口
type OwnerRepository interface {
	Create(owner *models.Owner) error
	Save(owner *models.Owner) error
	GetByID(id uint) (*models.Owner, error)
	ListByDealID(dealID uint) ([]models.Owner, error)
	NamesByIDs(ids []uint) (map[uint]string, error)
	SetStarred(id uint, starred bool) (int64, error)
	Delete(id uint) error
	DeleteByDealID(dealID uint) error
	WithTx(tx *gorm.DB) *GormOwnerRepository
}

// GormOwnerRepository GORM 实现
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository 创建持有人仓库
func NewOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOwnerRepository) WithTx(tx *gorm.DB) *GormOwnerRepository {
	if tx == nil {
		return r
	}
	return &GormOwnerRepository{db: tx}
}

// Create 创建持有人
func (r *GormOwnerRepository) Create(owner *models.Owner) error {
	return r.db.Create(owner).Error
}

// Save 保存持有人
func (r *GormOwnerRepository) Save(owner *models.Owner) error {
	return r.db.Save(owner).Error
}

// GetByID 根据 ID 获取持有人
func (r *GormOwnerRepository) GetByID(id uint) (*models.Owner, error) {
	var owner models.Owner
	if err := r.db.First(&owner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &owner, nil
}

// ListByDealID 获取交易下的持有人列表
func (r *GormOwnerRepository) ListByDealID(dealID uint) ([]models.Owner, error) {
	var owners []models.Owner
	if err := r.db.Where("deal_id = ?", dealID).Order("id asc").Find(&owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}

// NamesByIDs 批量获取持有人姓名
func (r *GormOwnerRepository) NamesByIDs(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var owners []models.Owner
	if err := r.db.Select("id, name").Where("id IN ?", ids).Find(&owners).Error; err != nil {
		return nil, err
	}
	for _, owner := range owners {
		names[owner.ID] = owner.Name
	}
	return names, nil
}

// SetStarred 设置标星状态，返回受影响行数
func (r *GormOwnerRepository) SetStarred(id uint, starred bool) (int64, error) {
	result := r.db.Model(&models.Owner{}).Where("id = ?", id).Update("starred", starred)
	return result.RowsAffected, result.Error
}

// Delete 删除持有人
func (r *GormOwnerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Owner{}, id).Error
}

// DeleteByDealID 删除交易下全部持有人
func (r *GormOwnerRepository) DeleteByDealID(dealID uint) error {
	return r.db.Where("deal_id = ?", dealID).Delete(&models.Owner{}).Error
}

package repository

import (
	"errors"

	"github.com/landdesk/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestorRepository 投资人数据访问接口
type InvestorRepository interface {
	Create(investor *models.Investor) error
	Save(investor *models.Investor) error
	GetByID(id uint) (*models.Investor, error)
	ListByDealID(dealID uint) ([]models.Investor, error)
	NamesByIDs(ids []uint) (map[uint]string, error)
	SetStarred(id uint, starred bool) (int64, error)
	SumInvestmentByDealID(dealID uint) (decimal.Decimal, error)
	Delete(id uint) error
	DeleteByDealID(dealID uint) error
	WithTx(tx *gorm.DB) *GormInvestorRepository
}

// GormInvestorRepository GORM 实现
type GormInvestorRepository struct {
	db *gorm.DB
}

// NewInvestorRepository 创建投资人仓库
func NewInvestorRepository(db *gorm.DB) *GormInvestorRepository {
	return &GormInvestorRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInvestorRepository) WithTx(tx *gorm.DB) *GormInvestorRepository {
	if tx == nil {
		return r
	}
	return &GormInvestorRepository{db: tx}
}

// Create 创建投资人
func (r *GormInvestorRepository) Create(investor *models.Investor) error {
	return r.db.Create(investor).Error
}

// Save 保存投资人
func (r *GormInvestorRepository) Save(investor *models.Investor) error {
	return r.db.Save(investor).Error
}

// GetByID 根据 ID 获取投资人
func (r *GormInvestorRepository) GetByID(id uint) (*models.Investor, error) {
	var investor models.Investor
	if err := r.db.First(&investor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &investor, nil
}

// ListByDealID 获取交易下的投资人列表
func (r *GormInvestorRepository) ListByDealID(dealID uint) ([]models.Investor, error) {
	var investors []models.Investor
	if err := r.db.Where("deal_id = ?", dealID).Order("id asc").Find(&investors).Error; err != nil {
		return nil, err
	}
	return investors, nil
}

// NamesByIDs 批量获取投资人姓名
func (r *GormInvestorRepository) NamesByIDs(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var investors []models.Investor
	if err := r.db.Select("id, investor_name").Where("id IN ?", ids).Find(&investors).Error; err != nil {
		return nil, err
	}
	for _, investor := range investors {
		names[investor.ID] = investor.InvestorName
	}
	return names, nil
}

// SetStarred 设置标星状态，返回受影响行数
func (r *GormInvestorRepository) SetStarred(id uint, starred bool) (int64, error) {
	result := r.db.Model(&models.Investor{}).Where("id = ?", id).Update("starred", starred)
	return result.RowsAffected, result.Error
}

// SumInvestmentByDealID 汇总交易投资总额
func (r *GormInvestorRepository) SumInvestmentByDealID(dealID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.Model(&models.Investor{}).
		Select("COALESCE(SUM(investment_amount), 0)").
		Where("deal_id = ?", dealID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Delete 删除投资人
func (r *GormInvestorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Investor{}, id).Error
}

// DeleteByDealID 删除交易下全部投资人
func (r *GormInvestorRepository) DeleteByDealID(dealID uint) error {
	return r.db.Where("deal_id = ?", dealID).Delete(&models.Investor{}).Error
}

package repository

import (
	"errors"
	"strings"

	"github.com/landdesk/internal/models"

	"gorm.io/gorm"
)

// DealRepository 交易数据访问接口
type DealRepository interface {
	Create(deal *models.Deal) error
	Save(deal *models.Deal) error
	GetByID(id uint) (*models.Deal, error)
	List(filter DealListFilter) ([]models.Deal, int64, error)
	StatusStats() (map[string]int64, error)
	NamesByIDs(ids []uint) (map[uint]string, error)
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormDealRepository
}

// GormDealRepository GORM 实现
type GormDealRepository struct {
	db *gorm.DB
}

// NewDealRepository 创建交易仓库
func NewDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDealRepository) WithTx(tx *gorm.DB) *GormDealRepository {
	if tx == nil {
		return r
	}
	return &GormDealRepository{db: tx}
}

// Transaction 执行事务
func (r *GormDealRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建交易
func (r *GormDealRepository) Create(deal *models.Deal) error {
	return r.db.Create(deal).Error
}

// Save 保存交易
func (r *GormDealRepository) Save(deal *models.Deal) error {
	return r.db.Save(deal).Error
}

// GetByID 根据 ID 获取交易
func (r *GormDealRepository) GetByID(id uint) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.First(&deal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

// List 分页查询交易列表
func (r *GormDealRepository) List(filter DealListFilter) ([]models.Deal, int64, error) {
	query := r.db.Model(&models.Deal{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedBy != 0 {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("project_name LIKE ? OR survey_number LIKE ? OR village LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var deals []models.Deal
	if err := query.Order("id desc").Find(&deals).Error; err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

// StatusStats 按状态统计交易数量
func (r *GormDealRepository) StatusStats() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	if err := r.db.Model(&models.Deal{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	stats := make(map[string]int64, len(rows))
	for _, item := range rows {
		stats[item.Status] = item.Count
	}
	return stats, nil
}

// NamesByIDs 批量获取交易项目名
func (r *GormDealRepository) NamesByIDs(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var deals []models.Deal
	if err := r.db.Select("id, project_name").Where("id IN ?", ids).Find(&deals).Error; err != nil {
		return nil, err
	}
	for _, deal := range deals {
		names[deal.ID] = deal.ProjectName
	}
	return names, nil
}

// Delete 删除交易（软删除）
func (r *GormDealRepository) Delete(id uint) error {
	return r.db.Delete(&models.Deal{}, id).Error
}

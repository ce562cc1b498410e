package repository

import (
	"github.com/landdesk/internal/models"

	"gorm.io/gorm"
)

// ActivityLogRepository 操作日志数据访问接口
type ActivityLogRepository interface {
	Create(log *models.ActivityLog) error
	List(filter ActivityLogListFilter) ([]models.ActivityLog, int64, error)
	WithTx(tx *gorm.DB) *GormActivityLogRepository
}

// GormActivityLogRepository GORM 实现
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository 创建操作日志仓库
func NewActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormActivityLogRepository) WithTx(tx *gorm.DB) *GormActivityLogRepository {
	if tx == nil {
		return r
	}
	return &GormActivityLogRepository{db: tx}
}

// Create 写入操作日志
func (r *GormActivityLogRepository) Create(log *models.ActivityLog) error {
	return r.db.Create(log).Error
}

// List 分页查询操作日志
func (r *GormActivityLogRepository) List(filter ActivityLogListFilter) ([]models.ActivityLog, int64, error) {
	query := r.db.Model(&models.ActivityLog{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var logs []models.ActivityLog
	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

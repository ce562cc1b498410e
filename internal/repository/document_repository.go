package repository

import (
	"errors"

	"github.com/landdesk/internal/models"

	"gorm.io/gorm"
)

// DocumentRepository 文档元数据访问接口
type DocumentRepository interface {
	Create(doc *models.Document) error
	GetByID(id uint) (*models.Document, error)
	ListByDealID(dealID uint) ([]models.Document, error)
	ListByOwnerID(ownerID uint) ([]models.Document, error)
	ListByInvestorID(investorID uint) ([]models.Document, error)
	Delete(id uint) error
	DeleteByDealID(dealID uint) error
	WithTx(tx *gorm.DB) *GormDocumentRepository
}

// GormDocumentRepository GORM 实现
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository 创建文档仓库
func NewDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDocumentRepository) WithTx(tx *gorm.DB) *GormDocumentRepository {
	if tx == nil {
		return r
	}
	return &GormDocumentRepository{db: tx}
}

// Create 创建文档记录
func (r *GormDocumentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

// GetByID 根据 ID 获取文档记录
func (r *GormDocumentRepository) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// ListByDealID 获取交易文档列表
func (r *GormDocumentRepository) ListByDealID(dealID uint) ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.Where("deal_id = ? AND owner_id IS NULL AND investor_id IS NULL", dealID).
		Order("id desc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// ListByOwnerID 获取持有人文档列表
func (r *GormDocumentRepository) ListByOwnerID(ownerID uint) ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.Where("owner_id = ?", ownerID).Order("id desc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// ListByInvestorID 获取投资人文档列表
func (r *GormDocumentRepository) ListByInvestorID(investorID uint) ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.Where("investor_id = ?", investorID).Order("id desc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete 删除文档记录
func (r *GormDocumentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Document{}, id).Error
}

// DeleteByDealID 删除交易下全部文档记录
func (r *GormDocumentRepository) DeleteByDealID(dealID uint) error {
	return r.db.Where("deal_id = ?", dealID).Delete(&models.Document{}).Error
}

package service

import (
	"mime/multipart"
	"strings"

	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/logger"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"
)

// DocumentService 文档服务
type DocumentService struct {
	cfg          *config.Config
	dealRepo     repository.DealRepository
	ownerRepo    repository.OwnerRepository
	investorRepo repository.InvestorRepository
	documentRepo repository.DocumentRepository
	uploads      *UploadService
}

// NewDocumentService 创建文档服务实例
func NewDocumentService(
	cfg *config.Config,
	dealRepo repository.DealRepository,
	ownerRepo repository.OwnerRepository,
	investorRepo repository.InvestorRepository,
	documentRepo repository.DocumentRepository,
	uploads *UploadService,
) *DocumentService {
	return &DocumentService{
		cfg:          cfg,
		dealRepo:     dealRepo,
		ownerRepo:    ownerRepo,
		investorRepo: investorRepo,
		documentRepo: documentRepo,
		uploads:      uploads,
	}
}

// UploadDocumentInput 文档上传参数
// OwnerID/InvestorID 至多一个非空，决定文档归属层级。
type UploadDocumentInput struct {
	DealID       uint
	OwnerID      *uint
	InvestorID   *uint
	DocumentType string
	UploadedBy   uint
}

// Upload 上传文档并登记元数据
func (s *DocumentService) Upload(file *multipart.FileHeader, input UploadDocumentInput) (*models.Document, error) {
	deal, err := s.dealRepo.GetByID(input.DealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}

	scope := constants.DocumentOwnerDeal
	if input.OwnerID != nil {
		owner, err := s.ownerRepo.GetByID(*input.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.DealID != input.DealID {
			return nil, ErrOwnerNotFound
		}
		scope = constants.DocumentOwnerOwner
	} else if input.InvestorID != nil {
		investor, err := s.investorRepo.GetByID(*input.InvestorID)
		if err != nil {
			return nil, err
		}
		if investor == nil || investor.DealID != input.DealID {
			return nil, ErrInvestorNotFound
		}
		scope = constants.DocumentOwnerInvestor
	}

	storedPath, err := s.uploads.SaveDocument(file, input.DealID, scope)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		DealID:       input.DealID,
		OwnerID:      input.OwnerID,
		InvestorID:   input.InvestorID,
		DocumentType: strings.TrimSpace(input.DocumentType),
		DocumentName: file.Filename,
		FilePath:     storedPath,
		FileSize:     file.Size,
		UploadedBy:   input.UploadedBy,
	}
	if err := s.documentRepo.Create(doc); err != nil {
		if removeErr := removeUnderDir(s.cfg.Upload.Dir, storedPath); removeErr != nil {
			logger.Warnw("document_file_remove_failed", "path", storedPath, "error", removeErr)
		}
		return nil, err
	}
	return doc, nil
}

// ListByDeal 列出交易级文档（不含参与方文档）
func (s *DocumentService) ListByDeal(dealID uint) ([]models.Document, error) {
	deal, err := s.dealRepo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	return s.documentRepo.ListByDealID(dealID)
}

// ListByOwner 列出持有人文档
func (s *DocumentService) ListByOwner(ownerID uint) ([]models.Document, error) {
	return s.documentRepo.ListByOwnerID(ownerID)
}

// ListByInvestor 列出投资人文档
func (s *DocumentService) ListByInvestor(investorID uint) ([]models.Document, error) {
	return s.documentRepo.ListByInvestorID(investorID)
}

// Delete 删除文档，仅上传人或管理员可操作
// 数据库行先删，文件删除尽力而为。
func (s *DocumentService) Delete(documentID, actorID uint, actorRole string) error {
	doc, err := s.documentRepo.GetByID(documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocumentNotFound
	}
	if actorRole != constants.RoleAdmin && doc.UploadedBy != actorID {
		return ErrForbidden
	}
	if err := s.documentRepo.Delete(documentID); err != nil {
		return err
	}
	if err := removeUnderDir(s.cfg.Upload.Dir, doc.FilePath); err != nil {
		logger.Warnw("document_file_remove_failed", "path", doc.FilePath, "error", err)
	}
	return nil
}

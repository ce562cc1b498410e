package service

import (
	"mime/multipart"
	"strings"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
)

// UploadProof 上传付款凭证并记录元数据
func (s *PaymentService) UploadProof(dealID, paymentID uint, file *multipart.FileHeader, docType string, uploadedBy uint) (*models.PaymentProof, error) {
	payment, err := s.paymentRepo.GetByDealAndID(dealID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	storedPath, err := s.uploads.SavePaymentProof(file, dealID, paymentID)
	if err != nil {
		return nil, err
	}

	proof := &models.PaymentProof{
		PaymentID:  paymentID,
		DealID:     dealID,
		FilePath:   storedPath,
		FileName:   file.Filename,
		DocType:    strings.TrimSpace(docType),
		FileSize:   file.Size,
		UploadedBy: uploadedBy,
	}
	if err := s.proofRepo.Create(proof); err != nil {
		s.removeStoredFile(storedPath)
		return nil, err
	}
	return proof, nil
}

// ListProofs 列出付款的全部凭证
func (s *PaymentService) ListProofs(dealID, paymentID uint) ([]models.PaymentProof, error) {
	payment, err := s.paymentRepo.GetByDealAndID(dealID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return s.proofRepo.ListByPaymentID(paymentID)
}

// DeleteProof 删除单个凭证，仅上传人或管理员可操作
// 数据库行先删，文件删除尽力而为。
func (s *PaymentService) DeleteProof(proofID, actorID uint, actorRole string) error {
	proof, err := s.proofRepo.GetByID(proofID)
	if err != nil {
		return err
	}
	if proof == nil {
		return ErrProofNotFound
	}
	if actorRole != constants.RoleAdmin && proof.UploadedBy != actorID {
		return ErrForbidden
	}
	if err := s.proofRepo.Delete(proofID); err != nil {
		return err
	}
	s.removeStoredFile(proof.FilePath)
	return nil
}

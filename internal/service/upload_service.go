package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/landdesk/internal/config"

	"github.com/google/uuid"
)

// UploadService 文件上传服务
// 凭证与文档统一存储在 cfg.Upload.Dir 下，数据库只记录相对路径。
type UploadService struct {
	cfg *config.Config
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SavePaymentProof 保存付款凭证文件，返回相对存储路径
func (s *UploadService) SavePaymentProof(file *multipart.FileHeader, dealID, paymentID uint) (string, error) {
	relDir := filepath.Join(fmt.Sprintf("deal_%d", dealID), "payments", fmt.Sprintf("%d", paymentID))
	return s.saveFile(file, relDir, s.cfg.Upload.ProofMaxSize)
}

// SaveDocument 保存交易/业主/投资人文档，返回相对存储路径
func (s *UploadService) SaveDocument(file *multipart.FileHeader, dealID uint, scope string) (string, error) {
	relDir := filepath.Join(fmt.Sprintf("deal_%d", dealID), "documents")
	if scope = strings.TrimSpace(scope); scope != "" {
		relDir = filepath.Join(relDir, scope)
	}
	return s.saveFile(file, relDir, s.cfg.Upload.MaxSize)
}

// saveFile 校验大小、扩展名与探测到的 MIME 类型后落盘
// 文件名嵌入时间戳与随机ID，避免并发上传同名覆盖。
func (s *UploadService) saveFile(file *multipart.FileHeader, relDir string, maxSize int64) (string, error) {
	if file == nil {
		return "", ErrUploadMissingFile
	}
	if maxSize > 0 && file.Size > maxSize {
		return "", ErrUploadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return "", ErrUploadBadType
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 读文件头识别真实 MIME，不信任客户端声明
	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(buffer)
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", ErrUploadBadType
		}
	}

	filename := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)
	relPath := filepath.Join(relDir, filename)
	fullPath := filepath.Join(s.cfg.Upload.Dir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return relPath, nil
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

package service

import (
	"encoding/json"

	"github.com/landdesk/internal/logger"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"gorm.io/datatypes"
)

// ActivityService 操作审计日志服务
type ActivityService struct {
	activityRepo repository.ActivityLogRepository
}

// NewActivityService 创建审计日志服务实例
func NewActivityService(activityRepo repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// LogEntry 审计日志录入参数
type LogEntry struct {
	UserID     uint
	Action     string
	EntityType string
	EntityID   uint
	EntityName string
	Changes    interface{}
	IPAddress  string
	UserAgent  string
}

// Log 写入审计日志，尽力而为：失败只记警告，绝不影响业务请求
func (s *ActivityService) Log(entry LogEntry) {
	record := &models.ActivityLog{
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		EntityName: entry.EntityName,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
	}
	if entry.Changes != nil {
		raw, err := json.Marshal(entry.Changes)
		if err != nil {
			logger.Warnw("activity_changes_marshal_failed",
				"action", entry.Action,
				"entity_type", entry.EntityType,
				"error", err,
			)
		} else {
			record.Changes = datatypes.JSON(raw)
		}
	}
	if err := s.activityRepo.Create(record); err != nil {
		logger.Warnw("activity_log_write_failed",
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}

// List 分页查询审计日志
func (s *ActivityService) List(filter repository.ActivityLogListFilter) ([]models.ActivityLog, int64, error) {
	return s.activityRepo.List(filter)
}

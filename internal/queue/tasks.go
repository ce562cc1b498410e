package queue

import (
	"encoding/json"
	"time"

	"github.com/landdesk/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPaymentOverdue 逾期付款扫描任务
	TaskPaymentOverdue = constants.TaskPaymentOverdue
	// TaskReminderOverdue 逾期提醒扫描任务
	TaskReminderOverdue = constants.TaskReminderOverdue
)

// OverdueScanPayload 逾期扫描任务载荷
type OverdueScanPayload struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// NewPaymentOverdueTask 创建逾期付款扫描任务
func NewPaymentOverdueTask(payload OverdueScanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentOverdue, body), nil
}

// NewReminderOverdueTask 创建逾期提醒扫描任务
func NewReminderOverdueTask(payload OverdueScanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReminderOverdue, body), nil
}

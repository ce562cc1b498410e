package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/landdesk/internal/logger"
	"github.com/landdesk/internal/provider"
	"github.com/landdesk/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPaymentOverdue, c.handlePaymentOverdueScan)
	mux.HandleFunc(queue.TaskReminderOverdue, c.handleReminderOverdueScan)
}

func (c *Consumer) handlePaymentOverdueScan(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payment_overdue_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OverdueScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_payment_overdue_unmarshal_failed", "error", err)
		return err
	}
	if c.Container == nil || c.PaymentService == nil {
		logger.Warnw("worker_payment_overdue_skip_service_nil")
		return nil
	}
	affected, err := c.PaymentService.MarkOverdue(time.Now())
	if err != nil {
		logger.Warnw("worker_payment_overdue_scan_failed", "error", err)
		return err
	}
	if affected > 0 {
		logger.Infow("worker_payment_overdue_scan", "marked", affected)
	}
	return nil
}

func (c *Consumer) handleReminderOverdueScan(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_reminder_overdue_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OverdueScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_reminder_overdue_unmarshal_failed", "error", err)
		return err
	}
	if c.Container == nil || c.ReminderService == nil {
		logger.Warnw("worker_reminder_overdue_skip_service_nil")
		return nil
	}
	affected, err := c.ReminderService.MarkOverdue(time.Now())
	if err != nil {
		logger.Warnw("worker_reminder_overdue_scan_failed", "error", err)
		return err
	}
	if affected > 0 {
		logger.Infow("worker_reminder_overdue_scan", "marked", affected)
	}
	return nil
}

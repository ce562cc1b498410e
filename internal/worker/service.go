package worker

import (
	"context"
	"errors"
	"time"

	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/logger"
	"github.com/landdesk/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	overdueScanInterval = time.Hour
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil {
		go s.runOverdueScanLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runOverdueScanLoop 周期性标记逾期付款与提醒
func (s *Service) runOverdueScanLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.Container == nil {
		return
	}
	runOnce := func() {
		if s.consumer.PaymentService != nil {
			if marked, err := s.consumer.PaymentService.MarkOverdue(time.Now()); err != nil {
				logger.Warnw("worker_payment_overdue_loop_failed", "error", err)
			} else if marked > 0 {
				logger.Infow("worker_payment_overdue_loop", "marked", marked)
			}
		}
		if s.consumer.ReminderService != nil {
			if marked, err := s.consumer.ReminderService.MarkOverdue(time.Now()); err != nil {
				logger.Warnw("worker_reminder_overdue_loop_failed", "error", err)
			} else if marked > 0 {
				logger.Infow("worker_reminder_overdue_loop", "marked", marked)
			}
		}
	}
	runOnce()

	ticker := time.NewTicker(overdueScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

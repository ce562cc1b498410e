package worker

import (
	"context"
	"testing"

	"github.com/landdesk/internal/config"

	"github.com/hibiken/asynq"
)

func TestNewServiceQueueDisabled(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, NewConsumer(nil)); err == nil {
		t.Fatalf("expected error when queue disabled")
	}
	if _, err := NewService(nil, NewConsumer(nil)); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestConsumerRegisterNilSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(nil)
	consumer.Register(asynq.NewServeMux())
	NewConsumer(nil).Register(nil)
}

func TestOverdueHandlersNilTask(t *testing.T) {
	consumer := NewConsumer(nil)
	if err := consumer.handlePaymentOverdueScan(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
	if err := consumer.handleReminderOverdueScan(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
}

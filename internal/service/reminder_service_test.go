package service

import (
	"errors"
	"testing"
	"time"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"gorm.io/gorm"
)

func newReminderServiceForTest(t *testing.T) (*ReminderService, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	svc := NewReminderService(
		repository.NewDealRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewPaymentReminderRepository(db),
	)
	return svc, db
}

func TestCreateReminder(t *testing.T) {
	svc, db := newReminderServiceForTest(t)
	deal := createTestDeal(t, db)

	if _, err := svc.CreateReminder(deal.ID, ReminderInput{}); !errors.Is(err, ErrInvalidReminderDate) {
		t.Fatalf("missing reminder date want ErrInvalidReminderDate got %v", err)
	}
	if _, err := svc.CreateReminder(deal.ID, ReminderInput{ReminderDate: "2025-10-01", PaymentID: uintPtr(9999)}); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("unknown payment want ErrPaymentNotFound got %v", err)
	}

	reminder, err := svc.CreateReminder(deal.ID, ReminderInput{
		Description:  "Second installment",
		ReminderDate: "2025-10-01",
		DueDate:      "2025-10-08",
		Amount:       decPtr(t, "1750000"),
		Priority:     "urgent",
		CreatedBy:    1,
	})
	if err != nil {
		t.Fatalf("create reminder failed: %v", err)
	}
	if reminder.Status != constants.ReminderStatusPending {
		t.Fatalf("new reminder status want pending got %q", reminder.Status)
	}
	if reminder.Priority != constants.ReminderPriorityMedium {
		t.Fatalf("unknown priority should fall back to medium, got %q", reminder.Priority)
	}
}

func TestUpdateReminderStatus(t *testing.T) {
	svc, db := newReminderServiceForTest(t)
	deal := createTestDeal(t, db)

	reminder, err := svc.CreateReminder(deal.ID, ReminderInput{ReminderDate: "2025-10-01"})
	if err != nil {
		t.Fatalf("create reminder failed: %v", err)
	}

	if err := svc.UpdateStatus(deal.ID, reminder.ID, "archived"); !errors.Is(err, ErrInvalidReminderStatus) {
		t.Fatalf("bad status want ErrInvalidReminderStatus got %v", err)
	}
	if err := svc.UpdateStatus(deal.ID+1, reminder.ID, constants.ReminderStatusCompleted); !errors.Is(err, ErrReminderNotFound) {
		t.Fatalf("cross-deal status update want ErrReminderNotFound got %v", err)
	}
	if err := svc.UpdateStatus(deal.ID, reminder.ID, "Completed"); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	var reloaded models.PaymentReminder
	if err := db.First(&reloaded, reminder.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.ReminderStatusCompleted {
		t.Fatalf("status want completed got %q", reloaded.Status)
	}
}

func TestReminderMarkOverdue(t *testing.T) {
	svc, db := newReminderServiceForTest(t)
	deal := createTestDeal(t, db)

	past := models.PaymentReminder{DealID: deal.ID, ReminderDate: mustDate(t, "2025-01-01"), Status: constants.ReminderStatusPending}
	future := models.PaymentReminder{DealID: deal.ID, ReminderDate: mustDate(t, "2099-01-01"), Status: constants.ReminderStatusPending}
	done := models.PaymentReminder{DealID: deal.ID, ReminderDate: mustDate(t, "2025-01-01"), Status: constants.ReminderStatusCompleted}
	for _, r := range []*models.PaymentReminder{&past, &future, &done} {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed reminder failed: %v", err)
		}
	}

	marked, err := svc.MarkOverdue(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("mark overdue failed: %v", err)
	}
	if marked != 1 {
		t.Fatalf("marked want 1 got %d", marked)
	}

	var reloaded models.PaymentReminder
	if err := db.First(&reloaded, past.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.ReminderStatusOverdue {
		t.Fatalf("past reminder want overdue got %q", reloaded.Status)
	}

	var futureReloaded models.PaymentReminder
	if err := db.First(&futureReloaded, future.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if futureReloaded.Status != constants.ReminderStatusPending {
		t.Fatalf("future reminder must stay pending, got %q", futureReloaded.Status)
	}
}

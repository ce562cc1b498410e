package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Deal{},
		&models.Owner{},
		&models.Investor{},
		&models.Buyer{},
		&models.Payment{},
		&models.PaymentParty{},
		&models.PaymentProof{},
		&models.Expense{},
		&models.Document{},
		&models.PaymentReminder{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func newPaymentServiceForTest(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	cfg := &config.Config{}
	svc := NewPaymentService(
		cfg,
		repository.NewPaymentRepository(db),
		repository.NewPaymentPartyRepository(db),
		repository.NewPaymentProofRepository(db),
		repository.NewDealRepository(db),
		NewUploadService(cfg),
	)
	return svc, db
}

func createTestDeal(t *testing.T, db *gorm.DB) *models.Deal {
	t.Helper()
	deal := &models.Deal{
		ProjectName: "Test Survey Plot",
		Status:      "open",
		CreatedBy:   1,
	}
	if err := db.Create(deal).Error; err != nil {
		t.Fatalf("create deal failed: %v", err)
	}
	return deal
}

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", raw, err)
	}
	return d
}

func decPtr(t *testing.T, raw string) *decimal.Decimal {
	t.Helper()
	d := dec(t, raw)
	return &d
}

func uintPtr(v uint) *uint {
	return &v
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t.Fatalf("bad date %q: %v", raw, err)
	}
	return parsed
}

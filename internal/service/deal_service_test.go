package service

import (
	"errors"
	"testing"

	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"gorm.io/gorm"
)

func newDealServiceForTest(t *testing.T) (*DealService, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	cfg := &config.Config{}
	svc := NewDealService(
		cfg,
		repository.NewDealRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewPaymentPartyRepository(db),
		repository.NewPaymentProofRepository(db),
		repository.NewOwnerRepository(db),
		repository.NewInvestorRepository(db),
		repository.NewBuyerRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewDocumentRepository(db),
		repository.NewPaymentReminderRepository(db),
	)
	return svc, db
}

func TestCreateDeal(t *testing.T) {
	svc, _ := newDealServiceForTest(t)

	if _, err := svc.CreateDeal(DealInput{ProjectName: "  "}); !errors.Is(err, ErrInvalidDealName) {
		t.Fatalf("blank name want ErrInvalidDealName got %v", err)
	}
	if _, err := svc.CreateDeal(DealInput{ProjectName: "Plot A", PurchaseDate: "garbage"}); !errors.Is(err, ErrInvalidPurchaseDate) {
		t.Fatalf("bad date want ErrInvalidPurchaseDate got %v", err)
	}

	deal, err := svc.CreateDeal(DealInput{
		ProjectName:    " Plot A ",
		PurchaseDate:   "2025-04-10",
		PurchaseAmount: decPtr(t, "4500000"),
		Status:         "nonsense",
		CreatedBy:      1,
	})
	if err != nil {
		t.Fatalf("create deal failed: %v", err)
	}
	if deal.ProjectName != "Plot A" {
		t.Fatalf("name should be trimmed, got %q", deal.ProjectName)
	}
	if deal.Status != constants.DealStatusOpen {
		t.Fatalf("unknown status should fall back to open, got %q", deal.Status)
	}
	if !deal.PurchaseAmount.Decimal.Equal(dec(t, "4500000")) {
		t.Fatalf("purchase amount mismatch: %s", deal.PurchaseAmount.Decimal)
	}
}

func TestDealFinancials(t *testing.T) {
	svc, db := newDealServiceForTest(t)
	deal := createTestDeal(t, db)

	payments := []models.Payment{
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(dec(t, "1000")), PaymentDate: models.NewDate(mustDate(t, "2025-09-01")), PaymentMode: constants.PaymentModeCash},
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(dec(t, "2500")), PaymentDate: models.NewDate(mustDate(t, "2025-09-02")), PaymentMode: constants.PaymentModeCash},
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(dec(t, "4000")), PaymentDate: models.NewDate(mustDate(t, "2025-09-03")), PaymentMode: constants.PaymentModeBankTransfer},
	}
	for i := range payments {
		if err := db.Create(&payments[i]).Error; err != nil {
			t.Fatalf("seed payment failed: %v", err)
		}
	}
	expense := models.Expense{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(dec(t, "300"))}
	if err := db.Create(&expense).Error; err != nil {
		t.Fatalf("seed expense failed: %v", err)
	}
	investor := models.Investor{DealID: deal.ID, InvestorName: "Anita", InvestmentAmount: models.NewMoneyFromDecimal(dec(t, "5000"))}
	if err := db.Create(&investor).Error; err != nil {
		t.Fatalf("seed investor failed: %v", err)
	}

	fin, err := svc.Financials(deal.ID)
	if err != nil {
		t.Fatalf("financials failed: %v", err)
	}
	if !fin.PaymentsTotal.Decimal.Equal(dec(t, "7500")) {
		t.Fatalf("payments total want 7500 got %s", fin.PaymentsTotal.Decimal)
	}
	if !fin.PaymentsByMode[constants.PaymentModeCash].Decimal.Equal(dec(t, "3500")) {
		t.Fatalf("cash total want 3500 got %s", fin.PaymentsByMode[constants.PaymentModeCash].Decimal)
	}
	if !fin.ExpensesTotal.Decimal.Equal(dec(t, "300")) {
		t.Fatalf("expenses total want 300 got %s", fin.ExpensesTotal.Decimal)
	}
	if !fin.InvestmentTotal.Decimal.Equal(dec(t, "5000")) {
		t.Fatalf("investment total want 5000 got %s", fin.InvestmentTotal.Decimal)
	}

	if _, err := svc.Financials(9999); !errors.Is(err, ErrDealNotFound) {
		t.Fatalf("missing deal want ErrDealNotFound got %v", err)
	}
}

func TestDeleteDealCascade(t *testing.T) {
	svc, db := newDealServiceForTest(t)
	deal := createTestDeal(t, db)

	payment := models.Payment{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(dec(t, "100")), PaymentDate: models.NewDate(mustDate(t, "2025-09-01"))}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}
	party := models.PaymentParty{PaymentID: payment.ID, PartyType: constants.PartyTypeOwner}
	if err := db.Create(&party).Error; err != nil {
		t.Fatalf("seed party failed: %v", err)
	}
	owner := models.Owner{DealID: deal.ID, Name: "Ramesh"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner failed: %v", err)
	}
	reminder := models.PaymentReminder{DealID: deal.ID, ReminderDate: mustDate(t, "2025-10-01")}
	if err := db.Create(&reminder).Error; err != nil {
		t.Fatalf("seed reminder failed: %v", err)
	}

	if err := svc.DeleteDeal(deal.ID, constants.RoleUser); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin want ErrForbidden got %v", err)
	}
	if err := svc.DeleteDeal(deal.ID, constants.RoleAdmin); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	var paymentCount, partyCount, ownerCount, reminderCount, dealCount int64
	db.Model(&models.Payment{}).Where("deal_id = ?", deal.ID).Count(&paymentCount)
	db.Model(&models.PaymentParty{}).Where("payment_id = ?", payment.ID).Count(&partyCount)
	db.Model(&models.Owner{}).Where("deal_id = ?", deal.ID).Count(&ownerCount)
	db.Model(&models.PaymentReminder{}).Where("deal_id = ?", deal.ID).Count(&reminderCount)
	if paymentCount+partyCount+ownerCount+reminderCount != 0 {
		t.Fatalf("cascade incomplete: payments=%d parties=%d owners=%d reminders=%d",
			paymentCount, partyCount, ownerCount, reminderCount)
	}

	db.Model(&models.Deal{}).Where("id = ?", deal.ID).Count(&dealCount)
	if dealCount != 0 {
		t.Fatalf("deal should be deleted")
	}
}

func TestCreateExpense(t *testing.T) {
	svc, db := newDealServiceForTest(t)
	deal := createTestDeal(t, db)

	if _, err := svc.CreateExpense(deal.ID, ExpenseInput{Amount: dec(t, "0")}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount want ErrInvalidAmount got %v", err)
	}

	expense, err := svc.CreateExpense(deal.ID, ExpenseInput{
		ExpenseType:   "legal",
		Amount:        dec(t, "270000"),
		ExpenseDate:   "2025-05-12",
		ReceiptNumber: "EXP-1",
		CreatedBy:     1,
	})
	if err != nil {
		t.Fatalf("create expense failed: %v", err)
	}
	if expense.ID == 0 {
		t.Fatalf("expense not persisted")
	}

	list, err := svc.ListExpenses(deal.ID)
	if err != nil {
		t.Fatalf("list expenses failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expense count want 1 got %d", len(list))
	}
}

package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Deal{},
		&models.Owner{},
		&models.Investor{},
		&models.Buyer{},
		&models.Payment{},
		&models.PaymentParty{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func repoDec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", raw, err)
	}
	return d
}

func repoDate(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t.Fatalf("bad date %q: %v", raw, err)
	}
	return parsed
}

func seedLedgerFixture(t *testing.T, db *gorm.DB) (deal *models.Deal, owner *models.Owner, payments []models.Payment) {
	t.Helper()
	deal = &models.Deal{ProjectName: "Survey 118", Status: "open"}
	if err := db.Create(deal).Error; err != nil {
		t.Fatalf("seed deal failed: %v", err)
	}
	owner = &models.Owner{DealID: deal.ID, Name: "Ramesh Patil"}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed owner failed: %v", err)
	}

	payments = []models.Payment{
		{
			DealID:      deal.ID,
			Amount:      models.NewMoneyFromDecimal(repoDec(t, "1000")),
			PaymentDate: models.NewDate(repoDate(t, "2025-09-01")),
			PaymentMode: constants.PaymentModeCash,
			Status:      constants.PaymentStatusCompleted,
		},
		{
			DealID:      deal.ID,
			Amount:      models.NewMoneyFromDecimal(repoDec(t, "2000")),
			PaymentDate: models.NewDate(repoDate(t, "2025-09-10")),
			PaymentMode: constants.PaymentModeBankTransfer,
			Status:      constants.PaymentStatusPending,
		},
		{
			DealID:      deal.ID,
			Amount:      models.NewMoneyFromDecimal(repoDec(t, "3000")),
			PaymentDate: models.NewDate(repoDate(t, "2025-09-20")),
			PaymentMode: constants.PaymentModeCash,
			Status:      constants.PaymentStatusCompleted,
		},
	}
	for i := range payments {
		if err := db.Create(&payments[i]).Error; err != nil {
			t.Fatalf("seed payment failed: %v", err)
		}
	}

	// 第三笔通过参与方份额关联业主
	party := models.PaymentParty{
		PaymentID:  payments[2].ID,
		PartyType:  constants.PartyTypeOwner,
		PartyID:    &owner.ID,
		Amount:     models.NewMoneyFromDecimal(repoDec(t, "3000")),
		Percentage: 100,
		Role:       constants.PartyRolePayee,
	}
	if err := db.Create(&party).Error; err != nil {
		t.Fatalf("seed party failed: %v", err)
	}
	return deal, owner, payments
}

func TestLedgerFilters(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPaymentRepository(db)
	deal, owner, payments := seedLedgerFixture(t, db)

	t.Run("no filter returns all newest first", func(t *testing.T) {
		rows, total, err := repo.Ledger(LedgerFilter{})
		if err != nil {
			t.Fatalf("ledger failed: %v", err)
		}
		if total != 3 || len(rows) != 3 {
			t.Fatalf("want 3 rows got total=%d len=%d", total, len(rows))
		}
		if rows[0].ID != payments[2].ID {
			t.Fatalf("order want newest first, got payment %d", rows[0].ID)
		}
	})

	t.Run("payment mode", func(t *testing.T) {
		rows, total, err := repo.Ledger(LedgerFilter{PaymentMode: constants.PaymentModeCash})
		if err != nil {
			t.Fatalf("ledger failed: %v", err)
		}
		if total != 2 || len(rows) != 2 {
			t.Fatalf("cash want 2 rows got total=%d len=%d", total, len(rows))
		}
	})

	t.Run("status", func(t *testing.T) {
		_, total, err := repo.Ledger(LedgerFilter{Status: constants.PaymentStatusPending})
		if err != nil {
			t.Fatalf("ledger failed: %v", err)
		}
		if total != 1 {
			t.Fatalf("pending want 1 got %d", total)
		}
	})

	t.Run("party via share rows", func(t *testing.T) {
		rows, total, err := repo.Ledger(LedgerFilter{PartyType: constants.PartyTypeOwner, PartyID: owner.ID})
		if err != nil {
			t.Fatalf("ledger failed: %v", err)
		}
		if total != 1 || len(rows) != 1 || rows[0].ID != payments[2].ID {
			t.Fatalf("owner filter want payment %d got total=%d rows=%+v", payments[2].ID, total, rows)
		}
	})

	t.Run("person search by name", func(t *testing.T) {
		_, total, err := repo.Ledger(LedgerFilter{PersonSearch: "Ramesh"})
		if err != nil {
			t.Fatalf("ledger failed: %v", err)
		}
		if total != 1 {
			t.Fatalf("person search want 1 got %d", total)
		}
		_, total, err = repo.Ledger(LedgerFilter{PersonSearch: "Nobody"})
		if err != nil {
			t.Fatalf("ledger failed: %v", err)
		}
		if total != 0 {
			t.Fatalf("unknown person want 0 got %d", total)
		}
	})

	t.Run("date range", func(t *testing.T) {
		start := repoDate(t, "2025-09-05")
		end := repoDate(t, "2025-09-15")
		rows, total, err := repo.Ledger(LedgerFilter{DealID: deal.ID, StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("ledger failed: %v", err)
		}
		if total != 1 || rows[0].ID != payments[1].ID {
			t.Fatalf("date range want payment %d got total=%d", payments[1].ID, total)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		rows, total, err := repo.Ledger(LedgerFilter{Page: 2, PageSize: 2})
		if err != nil {
			t.Fatalf("ledger failed: %v", err)
		}
		if total != 3 {
			t.Fatalf("total must ignore pagination, got %d", total)
		}
		if len(rows) != 1 || rows[0].ID != payments[0].ID {
			t.Fatalf("page 2 want oldest payment %d got %+v", payments[0].ID, rows)
		}
	})
}

func TestPaymentMarkOverdue(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPaymentRepository(db)
	deal := &models.Deal{ProjectName: "Survey 22", Status: "open"}
	if err := db.Create(deal).Error; err != nil {
		t.Fatalf("seed deal failed: %v", err)
	}

	pastDue := models.NewDate(repoDate(t, "2025-08-01"))
	futureDue := models.NewDate(repoDate(t, "2099-01-01"))
	paid := models.NewDate(repoDate(t, "2025-07-01"))
	rows := []models.Payment{
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "100")), PaymentDate: paid, Status: constants.PaymentStatusPending, DueDate: &pastDue},
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "100")), PaymentDate: paid, Status: constants.PaymentStatusPending, DueDate: &futureDue},
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "100")), PaymentDate: paid, Status: constants.PaymentStatusPending},
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "100")), PaymentDate: paid, Status: constants.PaymentStatusCompleted, DueDate: &pastDue},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed payment failed: %v", err)
		}
	}

	marked, err := repo.MarkOverdue(repoDate(t, "2025-09-01"))
	if err != nil {
		t.Fatalf("mark overdue failed: %v", err)
	}
	if marked != 1 {
		t.Fatalf("marked want 1 got %d", marked)
	}

	var reloaded models.Payment
	if err := db.First(&reloaded, rows[0].ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.PaymentStatusOverdue {
		t.Fatalf("past due payment want overdue got %q", reloaded.Status)
	}
}

func TestSumByDealID(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPaymentRepository(db)
	deal := &models.Deal{ProjectName: "Survey 7", Status: "open"}
	if err := db.Create(deal).Error; err != nil {
		t.Fatalf("seed deal failed: %v", err)
	}

	rows := []models.Payment{
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "1000.50")), PaymentDate: models.NewDate(repoDate(t, "2025-09-01")), PaymentMode: constants.PaymentModeCash},
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "2000")), PaymentDate: models.NewDate(repoDate(t, "2025-09-02")), PaymentMode: constants.PaymentModeCash},
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "500")), PaymentDate: models.NewDate(repoDate(t, "2025-09-03"))},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed payment failed: %v", err)
		}
	}

	sums, err := repo.SumByDealID(deal.ID)
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if !sums[constants.PaymentModeCash].Equal(repoDec(t, "3000.50")) {
		t.Fatalf("cash sum want 3000.50 got %s", sums[constants.PaymentModeCash])
	}
	if !sums["unspecified"].Equal(repoDec(t, "500")) {
		t.Fatalf("unspecified sum want 500 got %s", sums["unspecified"])
	}
}

func TestListPlanByLegacyKey(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPaymentRepository(db)
	deal := &models.Deal{ProjectName: "Survey 9", Status: "open"}
	if err := db.Create(deal).Error; err != nil {
		t.Fatalf("seed deal failed: %v", err)
	}

	parent := repoDec(t, "4000")
	rows := []models.Payment{
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "2500")), PaymentDate: models.NewDate(repoDate(t, "2025-09-01")), IsInstallment: true, InstallmentNumber: 2, TotalInstallments: 2, ParentAmount: models.NewMoneyFromDecimal(parent)},
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "1500")), PaymentDate: models.NewDate(repoDate(t, "2025-08-01")), IsInstallment: true, InstallmentNumber: 1, TotalInstallments: 2, ParentAmount: models.NewMoneyFromDecimal(parent)},
		{DealID: deal.ID, Amount: models.NewMoneyFromDecimal(repoDec(t, "4000")), PaymentDate: models.NewDate(repoDate(t, "2025-08-01")), IsInstallment: true, InstallmentNumber: 1, TotalInstallments: 3, ParentAmount: models.NewMoneyFromDecimal(repoDec(t, "9000"))},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed payment failed: %v", err)
		}
	}

	siblings, err := repo.ListPlanByLegacyKey(deal.ID, parent, 2)
	if err != nil {
		t.Fatalf("legacy lookup failed: %v", err)
	}
	if len(siblings) != 2 {
		t.Fatalf("siblings want 2 got %d", len(siblings))
	}
	if siblings[0].InstallmentNumber != 1 || siblings[1].InstallmentNumber != 2 {
		t.Fatalf("siblings must be ordered by installment number: %d,%d",
			siblings[0].InstallmentNumber, siblings[1].InstallmentNumber)
	}
}

package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"gorm.io/gorm"
)

func newLedgerServiceForTest(t *testing.T) (*LedgerService, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	cfg := &config.Config{}
	cfg.Ledger.Title = "Payment Ledger"
	cfg.Ledger.CurrencySymbol = "Rs."
	svc := NewLedgerService(
		cfg,
		repository.NewPaymentRepository(db),
		repository.NewPaymentPartyRepository(db),
		repository.NewDealRepository(db),
		repository.NewOwnerRepository(db),
		repository.NewInvestorRepository(db),
		repository.NewBuyerRepository(db),
		repository.NewUserRepository(db),
	)
	return svc, db
}

func TestLedgerQueryResolvesParticipantTokens(t *testing.T) {
	svc, db := newLedgerServiceForTest(t)
	deal := createTestDeal(t, db)

	owner := models.Owner{DealID: deal.ID, Name: "Ramesh Patil"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner failed: %v", err)
	}
	buyer := models.Buyer{DealID: deal.ID, Name: "Kiran Builders"}
	if err := db.Create(&buyer).Error; err != nil {
		t.Fatalf("seed buyer failed: %v", err)
	}

	payment := models.Payment{
		DealID:      deal.ID,
		Amount:      models.NewMoneyFromDecimal(dec(t, "50000")),
		PaymentDate: models.NewDate(mustDate(t, "2025-09-05")),
		Status:      constants.PaymentStatusCompleted,
		PaidBy:      participantToken(constants.PartyTypeBuyer, buyer.ID),
		PaidTo:      participantToken(constants.PartyTypeOwner, owner.ID),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}
	unresolved := models.Payment{
		DealID:      deal.ID,
		Amount:      models.NewMoneyFromDecimal(dec(t, "100")),
		PaymentDate: models.NewDate(mustDate(t, "2025-09-06")),
		PaidBy:      "owner_9999",
		PaidTo:      "freeform name",
	}
	if err := db.Create(&unresolved).Error; err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}

	entries, total, err := svc.Query(repository.LedgerFilter{})
	if err != nil {
		t.Fatalf("ledger query failed: %v", err)
	}
	if total != 2 || len(entries) != 2 {
		t.Fatalf("entry count want 2 got total=%d len=%d", total, len(entries))
	}

	byID := make(map[uint]LedgerEntry)
	for _, entry := range entries {
		byID[entry.ID] = entry
	}

	resolved := byID[payment.ID]
	if resolved.PaidByName != "Kiran Builders" {
		t.Fatalf("paid_by want Kiran Builders got %q", resolved.PaidByName)
	}
	if resolved.PaidToName != "Ramesh Patil" {
		t.Fatalf("paid_to want Ramesh Patil got %q", resolved.PaidToName)
	}
	if resolved.DealName != deal.ProjectName {
		t.Fatalf("deal name want %q got %q", deal.ProjectName, resolved.DealName)
	}

	// 查无此人或非标记格式时原样返回
	fallthru := byID[unresolved.ID]
	if fallthru.PaidByName != "owner_9999" {
		t.Fatalf("unknown token should echo, got %q", fallthru.PaidByName)
	}
	if fallthru.PaidToName != "freeform name" {
		t.Fatalf("free text should echo, got %q", fallthru.PaidToName)
	}
}

func TestParseParticipantToken(t *testing.T) {
	cases := []struct {
		token string
		ptype string
		id    uint
		ok    bool
	}{
		{"owner_3", "owner", 3, true},
		{"investor_12", "investor", 12, true},
		{"buyer_1", "buyer", 1, true},
		{"user_7", "user", 7, true},
		{"Owner_3", "owner", 3, true},
		{"vendor_3", "", 0, false},
		{"owner_", "", 0, false},
		{"owner_0", "", 0, false},
		{"_3", "", 0, false},
		{"plain name", "", 0, false},
	}
	for _, tc := range cases {
		ptype, id, ok := parseParticipantToken(tc.token)
		if ok != tc.ok || ptype != tc.ptype || id != tc.id {
			t.Fatalf("parseParticipantToken(%q) = (%q,%d,%v), want (%q,%d,%v)",
				tc.token, ptype, id, ok, tc.ptype, tc.id, tc.ok)
		}
	}
}

func TestLedgerExportCSV(t *testing.T) {
	svc, db := newLedgerServiceForTest(t)
	deal := createTestDeal(t, db)

	payment := models.Payment{
		DealID:      deal.ID,
		Amount:      models.NewMoneyFromDecimal(dec(t, "1234.50")),
		Currency:    "INR",
		PaymentDate: models.NewDate(mustDate(t, "2025-09-05")),
		Status:      constants.PaymentStatusCompleted,
		Reference:   "REF-42",
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}

	entries, _, err := svc.Query(repository.LedgerFilter{})
	if err != nil {
		t.Fatalf("ledger query failed: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(&buf, entries); err != nil {
		t.Fatalf("export csv failed: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv line count want 2 got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,Deal,Payment Date") {
		t.Fatalf("csv header mismatch: %s", lines[0])
	}
	if !strings.Contains(lines[1], "REF-42") || !strings.Contains(lines[1], "1234.5") {
		t.Fatalf("csv row missing fields: %s", lines[1])
	}
}

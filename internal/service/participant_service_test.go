package service

import (
	"errors"
	"testing"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
	"github.com/landdesk/internal/repository"

	"gorm.io/gorm"
)

func newParticipantServiceForTest(t *testing.T) (*ParticipantService, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	svc := NewParticipantService(
		repository.NewDealRepository(db),
		repository.NewOwnerRepository(db),
		repository.NewInvestorRepository(db),
		repository.NewBuyerRepository(db),
		repository.NewPaymentRepository(db),
	)
	return svc, db
}

func TestOwnerLifecycle(t *testing.T) {
	svc, db := newParticipantServiceForTest(t)
	deal := createTestDeal(t, db)

	if _, err := svc.CreateOwner(deal.ID, ParticipantInput{Name: "  "}); !errors.Is(err, ErrParticipantName) {
		t.Fatalf("blank name want ErrParticipantName got %v", err)
	}
	if _, err := svc.CreateOwner(9999, ParticipantInput{Name: "Ramesh"}); !errors.Is(err, ErrDealNotFound) {
		t.Fatalf("missing deal want ErrDealNotFound got %v", err)
	}

	owner, err := svc.CreateOwner(deal.ID, ParticipantInput{
		Name:             " Ramesh Patil ",
		PercentageShare:  60,
		InvestmentAmount: decPtr(t, "2700000"),
	})
	if err != nil {
		t.Fatalf("create owner failed: %v", err)
	}
	if owner.Name != "Ramesh Patil" {
		t.Fatalf("name should be trimmed, got %q", owner.Name)
	}

	updated, err := svc.UpdateOwner(deal.ID, owner.ID, ParticipantInput{Mobile: "9822012345"})
	if err != nil {
		t.Fatalf("update owner failed: %v", err)
	}
	if updated.Mobile != "9822012345" || updated.Name != "Ramesh Patil" {
		t.Fatalf("partial update mismatch: %+v", updated)
	}

	if err := svc.StarOwner(deal.ID, owner.ID, true); err != nil {
		t.Fatalf("star owner failed: %v", err)
	}
	var reloaded models.Owner
	if err := db.First(&reloaded, owner.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.Starred {
		t.Fatalf("owner should be starred")
	}

	if err := svc.DeleteOwner(deal.ID, owner.ID); err != nil {
		t.Fatalf("delete owner failed: %v", err)
	}
	if _, err := svc.UpdateOwner(deal.ID, owner.ID, ParticipantInput{Mobile: "x"}); !errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("deleted owner want ErrOwnerNotFound got %v", err)
	}
}

func TestParticipantDealScoping(t *testing.T) {
	svc, db := newParticipantServiceForTest(t)
	dealA := createTestDeal(t, db)
	dealB := &models.Deal{ProjectName: "Other Plot", Status: "open"}
	if err := db.Create(dealB).Error; err != nil {
		t.Fatalf("seed second deal failed: %v", err)
	}

	owner, err := svc.CreateOwner(dealA.ID, ParticipantInput{Name: "Ramesh"})
	if err != nil {
		t.Fatalf("create owner failed: %v", err)
	}

	// 参与方只能通过自己所属的交易访问
	if _, err := svc.UpdateOwner(dealB.ID, owner.ID, ParticipantInput{Mobile: "x"}); !errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("cross-deal update want ErrOwnerNotFound got %v", err)
	}
	if err := svc.DeleteOwner(dealB.ID, owner.ID); !errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("cross-deal delete want ErrOwnerNotFound got %v", err)
	}
}

func TestRecordInvestorToOwnerPayment(t *testing.T) {
	svc, db := newParticipantServiceForTest(t)
	deal := createTestDeal(t, db)

	investor, err := svc.CreateInvestor(deal.ID, ParticipantInput{Name: "Anita", InvestmentAmount: decPtr(t, "1500000")})
	if err != nil {
		t.Fatalf("create investor failed: %v", err)
	}
	owner, err := svc.CreateOwner(deal.ID, ParticipantInput{Name: "Ramesh"})
	if err != nil {
		t.Fatalf("create owner failed: %v", err)
	}

	if _, err := svc.RecordInvestorToOwnerPayment(deal.ID, investor.ID, owner.ID, dec(t, "0"), "2025-09-05", "", "", 1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount want ErrInvalidAmount got %v", err)
	}
	if _, err := svc.RecordInvestorToOwnerPayment(deal.ID, 9999, owner.ID, dec(t, "100"), "2025-09-05", "", "", 1); !errors.Is(err, ErrInvestorNotFound) {
		t.Fatalf("missing investor want ErrInvestorNotFound got %v", err)
	}

	payment, err := svc.RecordInvestorToOwnerPayment(deal.ID, investor.ID, owner.ID, dec(t, "500000"), "2025-09-05", constants.PaymentModeBankTransfer, "first tranche", 1)
	if err != nil {
		t.Fatalf("record payment failed: %v", err)
	}
	if payment.PaidBy != participantToken(constants.PartyTypeInvestor, investor.ID) {
		t.Fatalf("paid_by token mismatch: %q", payment.PaidBy)
	}
	if payment.PaidTo != participantToken(constants.PartyTypeOwner, owner.ID) {
		t.Fatalf("paid_to token mismatch: %q", payment.PaidTo)
	}
	if payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("status want completed got %q", payment.Status)
	}
	if payment.PartyType != constants.PartyTypeInvestor {
		t.Fatalf("party type want investor got %q", payment.PartyType)
	}
}

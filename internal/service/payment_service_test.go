package service

import (
	"errors"
	"testing"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
)

func TestCreatePaymentDerivesAmountsFromPercentages(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)

	payment, parties, err := svc.CreatePayment(deal.ID, CreatePaymentInput{
		Amount:      dec(t, "100000"),
		PaymentDate: "2025-09-05",
		PartyType:   constants.PartyTypeOwner,
		CreatedBy:   1,
		Parties: []PartyShareInput{
			{PartyType: constants.PartyTypeOwner, PartyID: uintPtr(1), Percentage: decPtr(t, "40"), Role: constants.PartyRolePayee},
			{PartyType: constants.PartyTypeOwner, PartyID: uintPtr(2), Percentage: decPtr(t, "60"), Role: constants.PartyRolePayee},
		},
	})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if payment.ID == 0 {
		t.Fatalf("payment not persisted")
	}
	if len(parties) != 2 {
		t.Fatalf("party count want 2 got %d", len(parties))
	}
	if !parties[0].Amount.Decimal.Equal(dec(t, "40000")) {
		t.Fatalf("first share want 40000 got %s", parties[0].Amount.Decimal)
	}
	if !parties[1].Amount.Decimal.Equal(dec(t, "60000")) {
		t.Fatalf("second share want 60000 got %s", parties[1].Amount.Decimal)
	}

	var stored int64
	if err := db.Model(&models.PaymentParty{}).Where("payment_id = ?", payment.ID).Count(&stored).Error; err != nil {
		t.Fatalf("count parties failed: %v", err)
	}
	if stored != 2 {
		t.Fatalf("stored party rows want 2 got %d", stored)
	}
}

func TestCreatePaymentPercentageMismatch(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)

	_, _, err := svc.CreatePayment(deal.ID, CreatePaymentInput{
		Amount:      dec(t, "100000"),
		PaymentDate: "2025-09-05",
		Parties: []PartyShareInput{
			{PartyType: constants.PartyTypeOwner, Percentage: decPtr(t, "40")},
			{PartyType: constants.PartyTypeOwner, Percentage: decPtr(t, "55")},
		},
	})
	var mismatch *PercentageMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("want PercentageMismatchError got %v", err)
	}
	if !mismatch.TotalPercentage.Equal(dec(t, "95")) {
		t.Fatalf("mismatch total want 95 got %s", mismatch.TotalPercentage)
	}

	// 对账失败时不得留下任何付款或参与方行
	var paymentCount, partyCount int64
	db.Model(&models.Payment{}).Count(&paymentCount)
	db.Model(&models.PaymentParty{}).Count(&partyCount)
	if paymentCount != 0 || partyCount != 0 {
		t.Fatalf("rejected creation must persist nothing: payments=%d parties=%d", paymentCount, partyCount)
	}
}

func TestCreatePaymentAmountTolerance(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)

	base := CreatePaymentInput{
		Amount:      dec(t, "100"),
		PaymentDate: "2025-09-05",
	}

	t.Run("within tolerance", func(t *testing.T) {
		input := base
		input.Parties = []PartyShareInput{
			{PartyType: constants.PartyTypeOwner, Amount: decPtr(t, "60")},
			{PartyType: constants.PartyTypeOwner, Amount: decPtr(t, "40.01")},
		}
		if _, _, err := svc.CreatePayment(deal.ID, input); err != nil {
			t.Fatalf("0.01 drift should pass, got %v", err)
		}
	})

	t.Run("beyond tolerance", func(t *testing.T) {
		input := base
		input.Parties = []PartyShareInput{
			{PartyType: constants.PartyTypeOwner, Amount: decPtr(t, "60")},
			{PartyType: constants.PartyTypeOwner, Amount: decPtr(t, "40.02")},
		}
		_, _, err := svc.CreatePayment(deal.ID, input)
		var mismatch *AmountMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("want AmountMismatchError got %v", err)
		}

		var paymentCount, partyCount int64
		db.Model(&models.Payment{}).Count(&paymentCount)
		db.Model(&models.PaymentParty{}).Count(&partyCount)
		// 子测试顺序执行，此前只有 within tolerance 写入的一笔
		if paymentCount != 1 || partyCount != 2 {
			t.Fatalf("rejected creation must persist nothing: payments=%d parties=%d", paymentCount, partyCount)
		}
	})

	t.Run("force overrides mismatch", func(t *testing.T) {
		input := base
		input.Force = true
		input.Parties = []PartyShareInput{
			{PartyType: constants.PartyTypeOwner, Amount: decPtr(t, "10")},
			{PartyType: constants.PartyTypeOwner, Amount: decPtr(t, "10")},
		}
		if _, _, err := svc.CreatePayment(deal.ID, input); err != nil {
			t.Fatalf("force should bypass reconciliation, got %v", err)
		}
	})
}

func TestCreatePaymentValidation(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)

	if _, _, err := svc.CreatePayment(deal.ID, CreatePaymentInput{Amount: dec(t, "0"), PaymentDate: "2025-09-05"}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount want ErrInvalidAmount got %v", err)
	}
	if _, _, err := svc.CreatePayment(deal.ID, CreatePaymentInput{Amount: dec(t, "100"), PaymentDate: "not-a-date"}); !errors.Is(err, ErrInvalidPaymentDate) {
		t.Fatalf("bad date want ErrInvalidPaymentDate got %v", err)
	}
	if _, _, err := svc.CreatePayment(9999, CreatePaymentInput{Amount: dec(t, "100"), PaymentDate: "2025-09-05"}); !errors.Is(err, ErrDealNotFound) {
		t.Fatalf("missing deal want ErrDealNotFound got %v", err)
	}
}

func TestUpdatePaymentWhitelist(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)
	payment, _, err := svc.CreatePayment(deal.ID, CreatePaymentInput{
		Amount:      dec(t, "5000"),
		PaymentDate: "2025-09-05",
		CreatedBy:   1,
	})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	applied, notAvailable, err := svc.UpdatePayment(deal.ID, payment.ID, map[string]interface{}{
		"notes":    "updated note",
		"status":   "completed",
		"deal_id":  float64(42),
		"is_fancy": true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("applied want 2 fields got %v", applied)
	}
	if len(notAvailable) != 2 {
		t.Fatalf("not available want 2 fields got %v", notAvailable)
	}

	var reloaded models.Payment
	if err := db.First(&reloaded, payment.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Notes != "updated note" {
		t.Fatalf("notes not applied: %q", reloaded.Notes)
	}
	if reloaded.Status != constants.PaymentStatusCompleted {
		t.Fatalf("status want completed got %s", reloaded.Status)
	}
	if reloaded.DealID != deal.ID {
		t.Fatalf("deal_id must not change, got %d", reloaded.DealID)
	}
}

func TestUpdatePaymentNoUpdatableFields(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)
	payment, _, err := svc.CreatePayment(deal.ID, CreatePaymentInput{
		Amount:      dec(t, "5000"),
		PaymentDate: "2025-09-05",
	})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	_, notAvailable, err := svc.UpdatePayment(deal.ID, payment.ID, map[string]interface{}{
		"bogus": "value",
	})
	if !errors.Is(err, ErrNoUpdatableFields) {
		t.Fatalf("want ErrNoUpdatableFields got %v", err)
	}
	if len(notAvailable) != 1 || notAvailable[0] != "bogus" {
		t.Fatalf("not available want [bogus] got %v", notAvailable)
	}

	if _, _, err := svc.UpdatePayment(deal.ID, payment.ID, map[string]interface{}{"amount": "-5"}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative amount want ErrInvalidAmount got %v", err)
	}
}

func TestDeletePaymentCascadesAndChecksActor(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)
	payment, _, err := svc.CreatePayment(deal.ID, CreatePaymentInput{
		Amount:      dec(t, "1000"),
		PaymentDate: "2025-09-05",
		CreatedBy:   7,
		Parties: []PartyShareInput{
			{PartyType: constants.PartyTypeOwner, Amount: decPtr(t, "1000")},
		},
	})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	if err := svc.DeletePayment(deal.ID, payment.ID, 8, constants.RoleUser); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-creator user want ErrForbidden got %v", err)
	}

	if err := svc.DeletePayment(deal.ID, payment.ID, 7, constants.RoleUser); err != nil {
		t.Fatalf("creator delete failed: %v", err)
	}

	var paymentCount, partyCount int64
	db.Model(&models.Payment{}).Where("id = ?", payment.ID).Count(&paymentCount)
	db.Model(&models.PaymentParty{}).Where("payment_id = ?", payment.ID).Count(&partyCount)
	if paymentCount != 0 || partyCount != 0 {
		t.Fatalf("cascade delete incomplete: payments=%d parties=%d", paymentCount, partyCount)
	}

	if err := svc.DeletePayment(deal.ID, payment.ID, 7, constants.RoleAdmin); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("deleted payment want ErrPaymentNotFound got %v", err)
	}
}

func TestCoerceDecimal(t *testing.T) {
	cases := []struct {
		value interface{}
		want  string
		ok    bool
	}{
		{float64(99.5), "99.5", true},
		{"1200.50", "1200.5", true},
		{" 42 ", "42", true},
		{int(7), "7", true},
		{int64(8), "8", true},
		{"abc", "", false},
		{nil, "", false},
		{true, "", false},
	}
	for _, tc := range cases {
		got, ok := CoerceDecimal(tc.value)
		if ok != tc.ok {
			t.Fatalf("CoerceDecimal(%v) ok want %v got %v", tc.value, tc.ok, ok)
		}
		if ok && !got.Equal(dec(t, tc.want)) {
			t.Fatalf("CoerceDecimal(%v) want %s got %s", tc.value, tc.want, got)
		}
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/models"
)

func TestSplitInstallments(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)

	payments, planID, err := svc.SplitInstallments(deal.ID, SplitInstallmentsInput{
		Installments: []InstallmentEntryInput{
			{Amount: dec(t, "1000"), PaymentDate: "2025-09-01"},
			{Amount: dec(t, "1000"), PaymentDate: "2025-10-01", DueDate: "2025-10-15"},
			{Amount: dec(t, "1500"), PaymentDate: "2025-11-01"},
		},
		CreatedBy: 1,
	})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if planID == "" {
		t.Fatalf("plan id must be assigned")
	}
	if len(payments) != 3 {
		t.Fatalf("payment count want 3 got %d", len(payments))
	}
	for i, p := range payments {
		if p.InstallmentPlanID != planID {
			t.Fatalf("installment %d plan id mismatch", i)
		}
		if !p.IsInstallment {
			t.Fatalf("installment %d flag not set", i)
		}
		if p.InstallmentNumber != i+1 {
			t.Fatalf("installment %d number want %d got %d", i, i+1, p.InstallmentNumber)
		}
		if p.TotalInstallments != 3 {
			t.Fatalf("installment %d total want 3 got %d", i, p.TotalInstallments)
		}
		if !p.ParentAmount.Decimal.Equal(dec(t, "3500")) {
			t.Fatalf("installment %d parent amount want 3500 got %s", i, p.ParentAmount.Decimal)
		}
	}
	if payments[1].DueDate == nil || !payments[1].DueDate.Equal(mustDate(t, "2025-10-15")) {
		t.Fatalf("second installment due date not kept")
	}
	// 未填到期日时取本期付款日，类型缺省购地款
	if payments[0].DueDate == nil || !payments[0].DueDate.Equal(mustDate(t, "2025-09-01")) {
		t.Fatalf("missing due date should default to the payment date, got %v", payments[0].DueDate)
	}
	if payments[0].PaymentType != constants.PaymentTypeLandPurchase {
		t.Fatalf("default payment type want land_purchase got %q", payments[0].PaymentType)
	}
}

func TestSplitInstallmentsValidation(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)

	_, _, err := svc.SplitInstallments(deal.ID, SplitInstallmentsInput{
		Installments: []InstallmentEntryInput{
			{Amount: dec(t, "1000"), PaymentDate: "2025-09-01"},
		},
	})
	if !errors.Is(err, ErrInvalidInstallments) {
		t.Fatalf("single entry want ErrInvalidInstallments got %v", err)
	}

	_, _, err = svc.SplitInstallments(deal.ID, SplitInstallmentsInput{
		Installments: []InstallmentEntryInput{
			{Amount: dec(t, "1000"), PaymentDate: "2025-09-01"},
			{Amount: dec(t, "1000"), PaymentDate: "09/01/2025"},
		},
	})
	if !errors.Is(err, ErrInvalidInstallmentDate) {
		t.Fatalf("slash date want ErrInvalidInstallmentDate got %v", err)
	}

	_, _, err = svc.SplitInstallments(deal.ID, SplitInstallmentsInput{
		Installments: []InstallmentEntryInput{
			{Amount: dec(t, "0"), PaymentDate: "2025-09-01"},
			{Amount: dec(t, "1000"), PaymentDate: "2025-10-01"},
		},
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero entry want ErrInvalidAmount got %v", err)
	}
}

func TestGetInstallmentPlanByPlanID(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)

	payments, _, err := svc.SplitInstallments(deal.ID, SplitInstallmentsInput{
		Installments: []InstallmentEntryInput{
			{Amount: dec(t, "500"), PaymentDate: "2025-09-01"},
			{Amount: dec(t, "500"), PaymentDate: "2025-10-01"},
		},
	})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	plan, err := svc.GetInstallmentPlan(deal.ID, payments[1].ID)
	if err != nil {
		t.Fatalf("get plan failed: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("plan size want 2 got %d", len(plan))
	}
}

func TestGetInstallmentPlanLegacyFallback(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)

	// 早期数据没有计划ID，按 (deal_id, parent_amount, total_installments) 归组
	legacy := []models.Payment{
		{
			DealID:            deal.ID,
			Amount:            models.NewMoneyFromDecimal(dec(t, "2000")),
			PaymentDate:       models.NewDate(mustDate(t, "2025-01-01")),
			IsInstallment:     true,
			InstallmentNumber: 1,
			TotalInstallments: 2,
			ParentAmount:      models.NewMoneyFromDecimal(dec(t, "4000")),
		},
		{
			DealID:            deal.ID,
			Amount:            models.NewMoneyFromDecimal(dec(t, "2000")),
			PaymentDate:       models.NewDate(mustDate(t, "2025-02-01")),
			IsInstallment:     true,
			InstallmentNumber: 2,
			TotalInstallments: 2,
			ParentAmount:      models.NewMoneyFromDecimal(dec(t, "4000")),
		},
	}
	for i := range legacy {
		if err := db.Create(&legacy[i]).Error; err != nil {
			t.Fatalf("seed legacy payment failed: %v", err)
		}
	}

	plan, err := svc.GetInstallmentPlan(deal.ID, legacy[0].ID)
	if err != nil {
		t.Fatalf("legacy plan lookup failed: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("legacy plan size want 2 got %d", len(plan))
	}
}

func TestGetInstallmentPlanRejectsNonInstallment(t *testing.T) {
	svc, db := newPaymentServiceForTest(t)
	deal := createTestDeal(t, db)

	payment, _, err := svc.CreatePayment(deal.ID, CreatePaymentInput{
		Amount:      dec(t, "100"),
		PaymentDate: "2025-09-05",
	})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	if _, err := svc.GetInstallmentPlan(deal.ID, payment.ID); !errors.Is(err, ErrPaymentNotInstallment) {
		t.Fatalf("want ErrPaymentNotInstallment got %v", err)
	}
}

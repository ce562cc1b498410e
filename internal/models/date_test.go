package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPaymentDateJSONFormat(t *testing.T) {
	due := NewDate(time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC))
	payment := Payment{
		PaymentDate: NewDate(time.Date(2025, 9, 5, 14, 30, 0, 0, time.Local)),
		DueDate:     &due,
	}

	raw, err := json.Marshal(payment)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, `"payment_date":"2025-09-05"`) {
		t.Fatalf("payment_date must serialize as YYYY-MM-DD, got %s", out)
	}
	if !strings.Contains(out, `"due_date":"2025-09-12"`) {
		t.Fatalf("due_date must serialize as YYYY-MM-DD, got %s", out)
	}

	payment.DueDate = nil
	raw, err = json.Marshal(payment)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(raw), `"due_date":null`) {
		t.Fatalf("nil due_date must serialize as null, got %s", raw)
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{`"2025-09-05"`, time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)},
		{`"2025-09-05T10:20:30Z"`, time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		var d Date
		if err := json.Unmarshal([]byte(tc.raw), &d); err != nil {
			t.Fatalf("unmarshal %s failed: %v", tc.raw, err)
		}
		if !d.Equal(tc.want) {
			t.Fatalf("unmarshal %s want %s got %s", tc.raw, tc.want, d.Time)
		}
	}

	var d Date
	if err := json.Unmarshal([]byte(`"garbage"`), &d); err == nil {
		t.Fatalf("garbage date must fail")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, 9, 5, 18, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time failed: %v", err)
	}
	if d.String() != "2025-09-05" {
		t.Fatalf("scan time want 2025-09-05 got %s", d)
	}
	if err := d.Scan("2025-09-06"); err != nil {
		t.Fatalf("scan string failed: %v", err)
	}
	if d.String() != "2025-09-06" {
		t.Fatalf("scan string want 2025-09-06 got %s", d)
	}
	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("scan nil must reset to zero")
	}
}

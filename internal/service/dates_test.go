package service

import (
	"testing"
	"time"
)

func TestParseFlexibleDate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2025-09-05", "2025-09-05", true},
		{" 2025-09-05 ", "2025-09-05", true},
		// 斜杠日期先按 MM/DD/YYYY 解析
		{"05/09/2025", "2025-05-09", true},
		// 美式解析不了时回退 DD/MM/YYYY
		{"13/09/2025", "2025-09-13", true},
		{"Fri, 05 Sep 2025 00:00:00 GMT", "2025-09-05", true},
		{"Fri, 05 Sep 2025 00:00:00 GM", "2025-09-05", true},
		{"2025-09-05T10:30:00.000Z", "2025-09-05", true},
		{"", "", false},
		{"garbage", "", false},
		{"2025/09/05", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseFlexibleDate(tc.raw)
		if ok != tc.ok {
			t.Fatalf("ParseFlexibleDate(%q) ok want %v got %v", tc.raw, tc.ok, ok)
		}
		if !ok {
			continue
		}
		if got.Format("2006-01-02") != tc.want {
			t.Fatalf("ParseFlexibleDate(%q) want %s got %s", tc.raw, tc.want, got.Format("2006-01-02"))
		}
	}
}

func TestParseStrictDate(t *testing.T) {
	if got, ok := ParseStrictDate("2025-09-05"); !ok || !got.Equal(time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("strict iso date should parse, got %v ok=%v", got, ok)
	}
	for _, raw := range []string{"05/09/2025", "2025-9-5", "Fri, 05 Sep 2025 00:00:00 GMT", ""} {
		if _, ok := ParseStrictDate(raw); ok {
			t.Fatalf("ParseStrictDate(%q) should fail", raw)
		}
	}
}

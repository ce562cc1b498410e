package service

import (
	"regexp"
	"strings"
	"time"
)

var (
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDatePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	trailingTZ       = regexp.MustCompile(`\s+(GMT|UTC|GM).*$`)
)

// ParseFlexibleDate 按固定顺序尝试多种日期格式：
// YYYY-MM-DD → MM/DD/YYYY → DD/MM/YYYY → "Fri, 05 Sep 2025 00:00:00 GMT" → ISO 带时间。
// 全部失败返回 false。顺序有语义：05/09/2025 会先按美式解析。
func ParseFlexibleDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	if isoDatePattern.MatchString(value) {
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t, true
		}
	}

	if slashDatePattern.MatchString(value) {
		if t, err := time.Parse("01/02/2006", value); err == nil {
			return t, true
		}
		if t, err := time.Parse("02/01/2006", value); err == nil {
			return t, true
		}
	}

	// JavaScript toUTCString 形态，偶见被截断为 "GM"
	if strings.Contains(value, ",") &&
		(strings.Contains(value, "GMT") || strings.Contains(value, "UTC") || strings.Contains(value, "GM")) {
		parts := strings.SplitN(value, ",", 2)
		datePart := trailingTZ.ReplaceAllString(strings.TrimSpace(parts[1]), "")
		if t, err := time.Parse("02 Jan 2006 15:04:05", datePart); err == nil {
			return truncateToDate(t), true
		}
	}

	if strings.Contains(value, "T") {
		datePart := strings.SplitN(value, "T", 2)[0]
		if t, err := time.Parse("2006-01-02", datePart); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseStrictDate 仅接受 YYYY-MM-DD，用于分期条目
func ParseStrictDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if !isoDatePattern.MatchString(value) {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

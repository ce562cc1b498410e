package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date 仅含日期的时间类型，JSON 统一输出 YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate 从 time.Time 创建日期（截断到天，UTC）
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// NewDatePtr 从 *time.Time 创建日期指针，nil 原样返回
func NewDatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// MarshalJSON 输出 YYYY-MM-DD 字符串
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON 解析 YYYY-MM-DD 或 RFC3339
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = NewDate(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date: cannot parse %q: %w", s, err)
	}
	*d = NewDate(t)
	return nil
}

// Value 用于数据库写入
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan 用于数据库读取
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("date: unsupported scan type %T", value)
	}
}

func (d *Date) scanString(s string) error {
	for _, layout := range []string{dateLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDate(t)
			return nil
		}
	}
	return fmt.Errorf("date: cannot scan %q", s)
}

// String 返回 YYYY-MM-DD 格式
func (d Date) String() string {
	return d.Format(dateLayout)
}

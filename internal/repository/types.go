package repository

import "time"

// DealListFilter 查询交易列表的过滤条件
type DealListFilter struct {
	Page      int
	PageSize  int
	Status    string
	Search    string
	CreatedBy uint
}

// LedgerFilter 跨交易付款台账过滤条件
type LedgerFilter struct {
	Page         int
	PageSize     int
	DealID       uint
	PartyType    string
	PartyID      uint
	PaymentMode  string
	PaymentType  string
	Status       string
	PersonSearch string
	StartDate    *time.Time
	EndDate      *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	Status   string
}

// ActivityLogListFilter 查询操作日志的过滤条件
type ActivityLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Action      string
	EntityType  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReminderListFilter 查询付款提醒的过滤条件
type ReminderListFilter struct {
	Page     int
	PageSize int
	DealID   uint
	Status   string
	Priority string
}

package constants

// 付款状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusFailed    = "failed"
	PaymentStatusOverdue   = "overdue"
)

// 付款类型常量
const (
	PaymentTypeLandPurchase       = "land_purchase"
	PaymentTypeInvestmentSale     = "investment_sale"
	PaymentTypeDocumentationLegal = "documentation_legal"
	PaymentTypeMaintenanceTaxes   = "maintenance_taxes"
	PaymentTypeOther              = "other"
)

// 付款方式常量（自由取值，以下为常见项）
const (
	PaymentModeCash         = "cash"
	PaymentModeBankTransfer = "bank_transfer"
	PaymentModeCheque       = "cheque"
	PaymentModeUPI          = "upi"
)

// 参与方类型常量
const (
	PartyTypeOwner    = "owner"
	PartyTypeInvestor = "investor"
	PartyTypeBuyer    = "buyer"
	PartyTypeOther    = "other"
)

// 参与方角色常量（自由文本，约定取值）
const (
	PartyRolePayer     = "payer"
	PartyRolePayee     = "payee"
	PartyRoleRecipient = "recipient"
)

// 用户角色常量
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 交易状态常量
const (
	DealStatusOpen       = "open"
	DealStatusInProgress = "in_progress"
	DealStatusCompleted  = "completed"
	DealStatusCancelled  = "cancelled"
)

// 付款提醒优先级常量
const (
	ReminderPriorityLow    = "low"
	ReminderPriorityMedium = "medium"
	ReminderPriorityHigh   = "high"
)

// 付款提醒状态常量
const (
	ReminderStatusPending   = "pending"
	ReminderStatusCompleted = "completed"
	ReminderStatusOverdue   = "overdue"
)

// 操作日志动作常量
const (
	ActivityActionCreate = "CREATE"
	ActivityActionUpdate = "UPDATE"
	ActivityActionDelete = "DELETE"
	ActivityActionLogin  = "LOGIN"
)

// 文档归属类型常量
const (
	DocumentOwnerDeal     = "deal"
	DocumentOwnerOwner    = "owner"
	DocumentOwnerInvestor = "investor"
)

// 币种常量
const (
	CurrencyDefault = "INR"
)

// 队列常量
const (
	QueueDefault        = "default"
	TaskPaymentOverdue  = "payment:overdue_scan"
	TaskReminderOverdue = "reminder:overdue_scan"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ld"
)

// 导出格式常量
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

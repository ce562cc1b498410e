package main

import (
	"fmt"
	"time"

	"github.com/landdesk/internal/config"
	"github.com/landdesk/internal/constants"
	"github.com/landdesk/internal/logger"
	"github.com/landdesk/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 执行迁移
	if err := models.Migrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("admin", "admin123"); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	var admin models.User
	if err := models.DB.Where("role = ?", constants.RoleAdmin).First(&admin).Error; err != nil {
		stdLog.Fatalf("Default admin not found: %v", err)
	}

	// 添加演示交易
	purchaseDate := time.Date(2025, 4, 10, 0, 0, 0, 0, time.Local)
	deals := []models.Deal{
		{
			ProjectName:    "Wakad Survey 118 Plot",
			SurveyNumber:   "118/2A",
			PurchaseDate:   &purchaseDate,
			Taluka:         "Mulshi",
			Village:        "Wakad",
			TotalArea:      2.5,
			AreaUnit:       "acre",
			PurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(4500000)),
			SellingAmount:  models.NewMoneyFromDecimal(decimal.NewFromInt(6200000)),
			Status:         constants.DealStatusInProgress,
			PaymentMode:    constants.PaymentModeBankTransfer,
			CreatedBy:      admin.ID,
		},
		{
			ProjectName:    "Hinjewadi Phase 2 Farmland",
			SurveyNumber:   "57/1B",
			Taluka:         "Mulshi",
			Village:        "Hinjewadi",
			TotalArea:      1.2,
			AreaUnit:       "hectare",
			PurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(2800000)),
			Status:         constants.DealStatusOpen,
			PaymentMode:    constants.PaymentModeCheque,
			CreatedBy:      admin.ID,
		},
	}

	dealIDs := map[string]uint{}
	for _, deal := range deals {
		var existing models.Deal
		if err := models.DB.Where("project_name = ?", deal.ProjectName).First(&existing).Error; err != nil {
			if err := models.DB.Create(&deal).Error; err != nil {
				stdLog.Printf("Failed to create deal %s: %v", deal.ProjectName, err)
				continue
			}
			stdLog.Printf("Created deal: %s", deal.ProjectName)
			dealIDs[deal.ProjectName] = deal.ID
		} else {
			stdLog.Printf("Deal already exists: %s", existing.ProjectName)
			dealIDs[existing.ProjectName] = existing.ID
		}
	}

	primaryDealID := dealIDs["Wakad Survey 118 Plot"]
	if primaryDealID == 0 {
		stdLog.Fatalf("Primary demo deal missing, abort seeding")
	}

	// 添加参与方
	owners := []models.Owner{
		{
			DealID:           primaryDealID,
			Name:             "Ramesh Patil",
			Mobile:           "9822012345",
			PanCard:          "ABCPP1234F",
			PercentageShare:  60,
			InvestmentAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(2700000)),
			Starred:          true,
		},
		{
			DealID:           primaryDealID,
			Name:             "Suresh Patil",
			Mobile:           "9822098765",
			PercentageShare:  40,
			InvestmentAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1800000)),
		},
	}
	for _, owner := range owners {
		var existing models.Owner
		if err := models.DB.Where("deal_id = ? AND name = ?", owner.DealID, owner.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&owner).Error; err != nil {
				stdLog.Printf("Failed to create owner %s: %v", owner.Name, err)
			} else {
				stdLog.Printf("Created owner: %s", owner.Name)
			}
		} else {
			stdLog.Printf("Owner already exists: %s", owner.Name)
		}
	}

	investors := []models.Investor{
		{
			DealID:               primaryDealID,
			InvestorName:         "Anita Deshmukh",
			InvestmentAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(1500000)),
			InvestmentPercentage: 33.33,
			Mobile:               "9890011223",
			Starred:              true,
		},
	}
	for _, inv := range investors {
		var existing models.Investor
		if err := models.DB.Where("deal_id = ? AND investor_name = ?", inv.DealID, inv.InvestorName).First(&existing).Error; err != nil {
			if err := models.DB.Create(&inv).Error; err != nil {
				stdLog.Printf("Failed to create investor %s: %v", inv.InvestorName, err)
			} else {
				stdLog.Printf("Created investor: %s", inv.InvestorName)
			}
		} else {
			stdLog.Printf("Investor already exists: %s", inv.InvestorName)
		}
	}

	buyers := []models.Buyer{
		{
			DealID: primaryDealID,
			Name:   "Kiran Builders LLP",
			Mobile: "9922334455",
			Email:  "office@kiranbuilders.example",
		},
	}
	for _, buyer := range buyers {
		var existing models.Buyer
		if err := models.DB.Where("deal_id = ? AND name = ?", buyer.DealID, buyer.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&buyer).Error; err != nil {
				stdLog.Printf("Failed to create buyer %s: %v", buyer.Name, err)
			} else {
				stdLog.Printf("Created buyer: %s", buyer.Name)
			}
		} else {
			stdLog.Printf("Buyer already exists: %s", buyer.Name)
		}
	}

	// 添加付款记录（含参与方份额拆分）
	var firstOwner models.Owner
	_ = models.DB.Where("deal_id = ? AND name = ?", primaryDealID, "Ramesh Patil").First(&firstOwner).Error
	var secondOwner models.Owner
	_ = models.DB.Where("deal_id = ? AND name = ?", primaryDealID, "Suresh Patil").First(&secondOwner).Error

	tokenBudget := models.NewMoneyFromDecimal(decimal.NewFromInt(1000000))
	paymentDate := time.Date(2025, 5, 2, 0, 0, 0, 0, time.Local)
	var existingPayment models.Payment
	if err := models.DB.Where("deal_id = ? AND reference = ?", primaryDealID, "SEED-TOKEN-001").First(&existingPayment).Error; err != nil {
		payment := models.Payment{
			DealID:      primaryDealID,
			PartyType:   constants.PartyTypeOwner,
			PartyID:     &firstOwner.ID,
			Amount:      tokenBudget,
			Currency:    "INR",
			PaymentDate: models.NewDate(paymentDate),
			PaymentMode: constants.PaymentModeBankTransfer,
			Reference:   "SEED-TOKEN-001",
			Description: "Token advance to land owners",
			Status:      constants.PaymentStatusCompleted,
			PaymentType: constants.PaymentTypeLandPurchase,
			PaidTo:      fmt.Sprintf("owner_%d", firstOwner.ID),
			CreatedBy:   admin.ID,
		}
		if err := models.DB.Create(&payment).Error; err != nil {
			stdLog.Printf("Failed to create payment: %v", err)
		} else {
			parties := []models.PaymentParty{
				{
					PaymentID:  payment.ID,
					PartyType:  constants.PartyTypeOwner,
					PartyID:    &firstOwner.ID,
					Amount:     models.NewMoneyFromDecimal(decimal.NewFromInt(600000)),
					Percentage: 60,
					Role:       constants.PartyRolePayee,
				},
				{
					PaymentID:  payment.ID,
					PartyType:  constants.PartyTypeOwner,
					PartyID:    &secondOwner.ID,
					Amount:     models.NewMoneyFromDecimal(decimal.NewFromInt(400000)),
					Percentage: 40,
					Role:       constants.PartyRolePayee,
				},
			}
			for _, party := range parties {
				if err := models.DB.Create(&party).Error; err != nil {
					stdLog.Printf("Failed to create payment party: %v", err)
				}
			}
			stdLog.Printf("Created payment SEED-TOKEN-001 with %d parties", len(parties))
		}
	} else {
		stdLog.Println("Payment already exists: SEED-TOKEN-001")
	}

	// 添加支出
	expenseDate := time.Date(2025, 5, 12, 0, 0, 0, 0, time.Local)
	var existingExpense models.Expense
	if err := models.DB.Where("deal_id = ? AND receipt_number = ?", primaryDealID, "SEED-EXP-001").First(&existingExpense).Error; err != nil {
		expense := models.Expense{
			DealID:             primaryDealID,
			ExpenseType:        "legal",
			ExpenseDescription: "Stamp duty and registration charges",
			Amount:             models.NewMoneyFromDecimal(decimal.NewFromInt(270000)),
			PaidBy:             "Ramesh Patil",
			ExpenseDate:        &expenseDate,
			ReceiptNumber:      "SEED-EXP-001",
			CreatedBy:          admin.ID,
		}
		if err := models.DB.Create(&expense).Error; err != nil {
			stdLog.Printf("Failed to create expense: %v", err)
		} else {
			stdLog.Println("Created expense SEED-EXP-001")
		}
	} else {
		stdLog.Println("Expense already exists: SEED-EXP-001")
	}

	// 添加付款提醒
	dueDate := time.Now().AddDate(0, 1, 0)
	reminderDate := dueDate.AddDate(0, 0, -7)
	var existingReminder models.PaymentReminder
	if err := models.DB.Where("deal_id = ? AND description = ?", primaryDealID, "Second installment due to owners").First(&existingReminder).Error; err != nil {
		reminder := models.PaymentReminder{
			DealID:       primaryDealID,
			Description:  "Second installment due to owners",
			DueDate:      &dueDate,
			ReminderDate: reminderDate,
			Amount:       models.NewMoneyFromDecimal(decimal.NewFromInt(1750000)),
			Priority:     constants.ReminderPriorityHigh,
			Status:       constants.ReminderStatusPending,
			CreatedBy:    admin.ID,
		}
		if err := models.DB.Create(&reminder).Error; err != nil {
			stdLog.Printf("Failed to create reminder: %v", err)
		} else {
			stdLog.Println("Created reminder for second installment")
		}
	} else {
		stdLog.Println("Reminder already exists: second installment")
	}

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 1 admin user (admin / admin123)")
	fmt.Println("- 2 Deals")
	fmt.Println("- 2 Owners, 1 Investor, 1 Buyer")
	fmt.Println("- 1 Payment with party split")
	fmt.Println("- 1 Expense, 1 Reminder")
}

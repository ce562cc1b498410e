package models

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Migrate 执行带版本号的数据库迁移
func Migrate() error {
	m := gormigrate.New(DB, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250901_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&User{},
					&Deal{},
					&Owner{},
					&Investor{},
					&Buyer{},
					&Payment{},
					&PaymentParty{},
					&PaymentProof{},
					&Expense{},
					&Document{},
					&PaymentReminder{},
					&ActivityLog{},
				)
			},
		},
		{
			ID: "20250915_add_installment_plan_id",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasColumn(&Payment{}, "installment_plan_id") {
					return nil
				}
				return tx.Migrator().AddColumn(&Payment{}, "InstallmentPlanID")
			},
		},
	})
	if err := m.Migrate(); err != nil {
		return err
	}
	return VerifySchema()
}

// VerifySchema 启动时校验关键表结构
// 旧实现按请求做"缺列重试降级"，这里改为启动一次性检查：
// 结构不符直接拒绝启动，请求路径假定 schema 已就绪。
func VerifySchema() error {
	type columnCheck struct {
		model  interface{}
		column string
	}
	checks := []columnCheck{
		{&Payment{}, "installment_plan_id"},
		{&Payment{}, "parent_amount"},
		{&Payment{}, "total_installments"},
		{&Payment{}, "payer_bank_name"},
		{&PaymentParty{}, "pay_to_party_type"},
		{&PaymentProof{}, "doc_type"},
		{&User{}, "token_version"},
	}
	for _, c := range checks {
		if !DB.Migrator().HasTable(c.model) {
			return fmt.Errorf("schema check failed: table for %T missing", c.model)
		}
		if !DB.Migrator().HasColumn(c.model, c.column) {
			return fmt.Errorf("schema check failed: %T missing column %s", c.model, c.column)
		}
	}
	return nil
}

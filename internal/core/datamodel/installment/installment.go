package installment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/card"
	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/expense"
)

type Installment struct {
	ID                int64            `gorm:"primaryKey"`
	ExpenseID         int64            `gorm:"column:expense_id;not null;uniqueIndex:idx_installment_expense_number"`
	Expense           *expense.Expense `gorm:"foreignKey:ExpenseID"`
	CardID            int64            `gorm:"column:card_id;not null"`
	Card              *card.Card       `gorm:"foreignKey:CardID"`
	Number            int              `gorm:"column:installment_number;not null;uniqueIndex:idx_installment_expense_number"`
	TotalInstallments int              `gorm:"column:total_installments;not null"`
	DueDate           time.Time        `gorm:"column:due_date;type:date;index;not null"`
	Amount            decimal.Decimal  `gorm:"column:amount;type:decimal(12,2);not null"`
	IsPaid            bool             `gorm:"column:is_paid;not null;default:false"`
	PaidDate          *time.Time       `gorm:"column:paid_date;type:date"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Installment) TableName() string {
	return "credit_card_installments"
}

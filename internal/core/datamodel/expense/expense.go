package expense

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/card"
	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/establishment"
)

type Expense struct {
	ID               int64                        `gorm:"primaryKey"`
	Amount           decimal.Decimal              `gorm:"column:amount;type:decimal(12,2);not null"`
	PurchaseDate     time.Time                    `gorm:"column:purchase_date;type:date;index;not null"`
	Description      string                       `gorm:"column:description;not null"`
	PaymentMethod    string                       `gorm:"column:payment_method;index;not null"`
	CardID           *int64                       `gorm:"column:card_id"`
	Card             *card.Card                   `gorm:"foreignKey:CardID"`
	EstablishmentID  int64                        `gorm:"column:establishment_id;not null"`
	Establishment    *establishment.Establishment `gorm:"foreignKey:EstablishmentID"`
	InstallmentCount int                          `gorm:"column:installment_count;not null;default:1"`
	CreatedAt        time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                    `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt        gorm.DeletedAt               `gorm:"column:deleted_at;index"`
}

func (Expense) TableName() string {
	return "expenses"
}

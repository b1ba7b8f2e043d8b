package spendinglimit

import (
	"time"

	"github.com/shopspring/decimal"
)

type MonthlySpendingLimit struct {
	ID        int64           `gorm:"primaryKey"`
	Category  string          `gorm:"column:category;not null;uniqueIndex:idx_limit_category_period"`
	Month     int             `gorm:"column:month;not null;uniqueIndex:idx_limit_category_period"`
	Year      int             `gorm:"column:year;not null;uniqueIndex:idx_limit_category_period"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (MonthlySpendingLimit) TableName() string {
	return "monthly_spending_limits"
}

package spendinglimit

import (
	"time"

	"github.com/frahmantamala/expense-ledger/internal/category"
	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/spendinglimit"
	"github.com/frahmantamala/expense-ledger/internal/core/money"
	"github.com/shopspring/decimal"
)

// Limit caps spending of one category in one calendar month.
type Limit struct {
	ID        int64           `json:"id"`
	Category  string          `json:"category"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Amount    decimal.Decimal `json:"amount"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewLimit(dto CreateLimitDTO) *Limit {
	now := time.Now()
	return &Limit{
		Category:  category.NormalizeName(dto.Category),
		Month:     dto.Month,
		Year:      dto.Year,
		Amount:    money.Round(dto.Amount),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToDataModel(l *Limit) *spendinglimit.MonthlySpendingLimit {
	return &spendinglimit.MonthlySpendingLimit{
		ID:        l.ID,
		Category:  l.Category,
		Month:     l.Month,
		Year:      l.Year,
		Amount:    l.Amount,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func FromDataModel(l *spendinglimit.MonthlySpendingLimit) *Limit {
	if l == nil {
		return nil
	}
	return &Limit{
		ID:        l.ID,
		Category:  l.Category,
		Month:     l.Month,
		Year:      l.Year,
		Amount:    l.Amount,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

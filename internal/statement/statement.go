package statement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CardRef identifies the card an installment is charged to.
type CardRef struct {
	ID             int64  `json:"id"`
	Name           string `json:"name,omitempty"`
	LastFourDigits string `json:"last_four_digits,omitempty"`
}

// Label is the short form printed on statements, such as "Nubank *1234".
func (c *CardRef) Label() string {
	if c == nil {
		return ""
	}
	if c.Name == "" {
		return fmt.Sprintf("card #%d", c.ID)
	}
	if c.LastFourDigits == "" {
		return c.Name
	}
	return c.Name + " *" + c.LastFourDigits
}

// Transaction is one line of a statement: either a direct expense or one
// installment of a credit-card purchase.
type Transaction struct {
	ExpenseID         int64           `json:"expense_id"`
	InstallmentID     *int64          `json:"installment_id,omitempty"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Establishment     string          `json:"establishment"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentMethod     string          `json:"payment_method"`
	Card              *CardRef        `json:"card,omitempty"`
	Installment       string          `json:"installment,omitempty"`
	InstallmentNumber int             `json:"-"`
}

// CategorySummary groups the month's transactions of one category. The limit
// fields are nil when the category has no active limit.
type CategorySummary struct {
	Category         string           `json:"category"`
	TotalSpent       decimal.Decimal  `json:"total_spent"`
	Limit            *decimal.Decimal `json:"limit"`
	AvailableBalance *decimal.Decimal `json:"available_balance"`
	PercentageUsed   *decimal.Decimal `json:"percentage_used"`
	IsOverLimit      *bool            `json:"is_over_limit"`
	Transactions     []Transaction    `json:"transactions"`
}

func (c *CategorySummary) HasLimit() bool {
	return c.Limit != nil
}

func (c *CategorySummary) OverLimit() bool {
	return c.IsOverLimit != nil && *c.IsOverLimit
}

type MonthlyStatement struct {
	Year             int               `json:"year"`
	Month            int               `json:"month"`
	Categories       []CategorySummary `json:"categories"`
	TotalExpenses    decimal.Decimal   `json:"total_expenses"`
	TotalLimits      decimal.Decimal   `json:"total_limits"`
	AvailableBalance decimal.Decimal   `json:"available_balance"`
	PercentageUsed   decimal.Decimal   `json:"percentage_used"`
}

// Category returns the summary for name, or nil.
func (m *MonthlyStatement) Category(name string) *CategorySummary {
	for i := range m.Categories {
		if m.Categories[i].Category == name {
			return &m.Categories[i]
		}
	}
	return nil
}

// OverLimit lists the categories whose spending exceeds their limit.
func (m *MonthlyStatement) OverLimit() []CategorySummary {
	var result []CategorySummary
	for _, c := range m.Categories {
		if c.OverLimit() {
			result = append(result, c)
		}
	}
	return result
}

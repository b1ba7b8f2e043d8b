package expense

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/core/common/validation"
	"github.com/frahmantamala/expense-ledger/internal/establishment"
	"github.com/frahmantamala/expense-ledger/internal/installment"
	"github.com/shopspring/decimal"
)

// CreateExpenseDTO represents the request payload for recording an expense.
// InstallmentCount defaults to 1.
type CreateExpenseDTO struct {
	Amount           decimal.Decimal `json:"amount"`
	PurchaseDate     string          `json:"purchase_date"`
	Description      string          `json:"description"`
	PaymentMethod    string          `json:"payment_method"`
	CardID           *int64          `json:"card_id,omitempty"`
	EstablishmentID  int64           `json:"establishment_id"`
	InstallmentCount int             `json:"installment_count,omitempty"`
}

func (dto CreateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("amount", dto.Amount).Required().PositiveDecimal(errors.ErrCodeInvalidAmount)
	v.Field("purchase_date", dto.PurchaseDate).Required()
	v.Field("description", dto.Description).Required().MaxLength(500)
	v.Field("payment_method", strings.ToLower(strings.TrimSpace(dto.PaymentMethod))).Required().OneOf(PaymentMethods(), errors.ErrCodeInvalidMethod)
	v.Field("establishment_id", dto.EstablishmentID).Required()
	v.Field("installment_count", dto.InstallmentCount).IntRange(0, 120, errors.ErrCodeInvalidCount)
	return v.Validate()
}

func (dto CreateExpenseDTO) ParsePurchaseDate() (time.Time, *errors.AppError) {
	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(dto.PurchaseDate))
	if err != nil {
		return time.Time{}, errors.NewValidationFieldError("purchase_date", "purchase_date must be formatted as YYYY-MM-DD", errors.ErrCodeInvalidDate)
	}
	return parsed, nil
}

// ExpenseDetail is an expense with its establishment and, for credit-card
// purchases, its installment plan.
type ExpenseDetail struct {
	*Expense
	PaymentMethodLabel string                       `json:"payment_method_label"`
	Establishment      *establishment.Establishment `json:"establishment,omitempty"`
	Installments       []*installment.Installment   `json:"installments,omitempty"`
}

type InstallmentsResponse struct {
	ExpenseID    int64                      `json:"expense_id"`
	Installments []*installment.Installment `json:"installments"`
}

package installment

import (
	"fmt"
	"time"

	installmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/installment"
	"github.com/shopspring/decimal"
)

// Installment is one monthly slice of a credit-card purchase.
type Installment struct {
	ID                int64           `json:"id"`
	ExpenseID         int64           `json:"expense_id"`
	CardID            int64           `json:"card_id"`
	Number            int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	DueDate           time.Time       `json:"due_date"`
	Amount            decimal.Decimal `json:"amount"`
	IsPaid            bool            `json:"is_paid"`
	PaidDate          *time.Time      `json:"paid_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Label renders the installment position as "k/N".
func (i *Installment) Label() string {
	return fmt.Sprintf("%d/%d", i.Number, i.TotalInstallments)
}

// Purchase is the part of an expense the generator needs.
type Purchase struct {
	Amount           decimal.Decimal
	PurchaseDate     time.Time
	CardID           *int64
	InstallmentCount int
}

func ToDataModel(i *Installment) *installmentDatamodel.Installment {
	return &installmentDatamodel.Installment{
		ID:                i.ID,
		ExpenseID:         i.ExpenseID,
		CardID:            i.CardID,
		Number:            i.Number,
		TotalInstallments: i.TotalInstallments,
		DueDate:           i.DueDate,
		Amount:            i.Amount,
		IsPaid:            i.IsPaid,
		PaidDate:          i.PaidDate,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func FromDataModel(i *installmentDatamodel.Installment) *Installment {
	if i == nil {
		return nil
	}
	return &Installment{
		ID:                i.ID,
		ExpenseID:         i.ExpenseID,
		CardID:            i.CardID,
		Number:            i.Number,
		TotalInstallments: i.TotalInstallments,
		DueDate:           i.DueDate.UTC(),
		Amount:            i.Amount,
		IsPaid:            i.IsPaid,
		PaidDate:          i.PaidDate,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func ToDataModelSlice(items []*Installment) []*installmentDatamodel.Installment {
	result := make([]*installmentDatamodel.Installment, len(items))
	for i, item := range items {
		result[i] = ToDataModel(item)
	}
	return result
}

func FromDataModelSlice(items []*installmentDatamodel.Installment) []*Installment {
	result := make([]*Installment, len(items))
	for i, item := range items {
		result[i] = FromDataModel(item)
	}
	return result
}

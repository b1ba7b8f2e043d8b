package expense

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/expense-ledger/internal"
	expenseDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-ledger/internal/core/money"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard  PaymentMethod = "credit_card"
	PaymentMethodDebitCard   PaymentMethod = "debit_card"
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodPix         PaymentMethod = "pix"
	PaymentMethodBankDeposit PaymentMethod = "bank_deposit"
	PaymentMethodBankSlip    PaymentMethod = "bank_slip"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCreditCard:  "credit card",
	PaymentMethodDebitCard:   "debit card",
	PaymentMethodCash:        "cash",
	PaymentMethodPix:         "pix",
	PaymentMethodBankDeposit: "bank deposit",
	PaymentMethodBankSlip:    "bank slip",
}

// PaymentMethods lists the accepted method codes.
func PaymentMethods() []string {
	return []string{
		string(PaymentMethodCreditCard),
		string(PaymentMethodDebitCard),
		string(PaymentMethodCash),
		string(PaymentMethodPix),
		string(PaymentMethodBankDeposit),
		string(PaymentMethodBankSlip),
	}
}

func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

// Label is the human readable name shown on statements.
func (m PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[m]; ok {
		return label
	}
	return string(m)
}

func (m PaymentMethod) RequiresCard() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodDebitCard
}

type Expense struct {
	ID               int64           `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	PurchaseDate     time.Time       `json:"purchase_date"`
	Description      string          `json:"description"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	CardID           *int64          `json:"card_id,omitempty"`
	EstablishmentID  int64           `json:"establishment_id"`
	InstallmentCount int             `json:"installment_count"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Validate checks the cross-field rules once every field is set.
func (e *Expense) Validate() *errors.AppError {
	if !e.Amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	if strings.TrimSpace(e.Description) == "" {
		return errors.NewValidationFieldError("description", "description is required", errors.ErrCodeInvalidDescription)
	}
	if e.PurchaseDate.IsZero() {
		return errors.NewValidationFieldError("purchase_date", "purchase_date is required", errors.ErrCodeInvalidDate)
	}
	if !e.PaymentMethod.IsValid() {
		return errors.ErrInvalidPaymentMethod.WithDetails(map[string]interface{}{
			"payment_method": e.PaymentMethod,
			"allowed":        PaymentMethods(),
		})
	}
	if e.InstallmentCount < 1 {
		return errors.ErrInvalidInstallmentCount
	}
	if e.PaymentMethod.RequiresCard() && e.CardID == nil {
		return errors.ErrCardRequired
	}
	if e.InstallmentCount > 1 && e.PaymentMethod != PaymentMethodCreditCard {
		return errors.ErrInstallmentsNotAllowed
	}
	return nil
}

func (e *Expense) IsCreditCard() bool {
	return e.PaymentMethod == PaymentMethodCreditCard
}

// NewExpense builds an expense from the request and validates it.
func NewExpense(dto CreateExpenseDTO) (*Expense, *errors.AppError) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	purchaseDate, err := dto.ParsePurchaseDate()
	if err != nil {
		return nil, err
	}

	count := dto.InstallmentCount
	if count == 0 {
		count = 1
	}

	now := time.Now()
	e := &Expense{
		Amount:           money.Round(dto.Amount),
		PurchaseDate:     purchaseDate,
		Description:      strings.TrimSpace(dto.Description),
		PaymentMethod:    PaymentMethod(strings.ToLower(strings.TrimSpace(dto.PaymentMethod))),
		CardID:           dto.CardID,
		EstablishmentID:  dto.EstablishmentID,
		InstallmentCount: count,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:               e.ID,
		Amount:           e.Amount,
		PurchaseDate:     e.PurchaseDate,
		Description:      e.Description,
		PaymentMethod:    string(e.PaymentMethod),
		CardID:           e.CardID,
		EstablishmentID:  e.EstablishmentID,
		InstallmentCount: e.InstallmentCount,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	if e == nil {
		return nil
	}
	return &Expense{
		ID:               e.ID,
		Amount:           e.Amount,
		PurchaseDate:     e.PurchaseDate.UTC(),
		Description:      e.Description,
		PaymentMethod:    PaymentMethod(e.PaymentMethod),
		CardID:           e.CardID,
		EstablishmentID:  e.EstablishmentID,
		InstallmentCount: e.InstallmentCount,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

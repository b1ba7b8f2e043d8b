package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeExpenseCreated    = "expense.created"
	EventTypeInstallmentPaid   = "installment.paid"
	EventTypeInstallmentUnpaid = "installment.unpaid"
)

// ExpenseCreatedEvent carries the dates an expense lands on: the purchase date
// for direct payments, one due date per installment for credit-card purchases.
type ExpenseCreatedEvent struct {
	BaseEvent
	ExpenseID     int64           `json:"expense_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	DueDates      []time.Time     `json:"due_dates,omitempty"`
}

func NewExpenseCreatedEvent(expenseID int64, amount decimal.Decimal, paymentMethod string, purchaseDate time.Time, dueDates []time.Time) *ExpenseCreatedEvent {
	return &ExpenseCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpenseCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"expense_id":        expenseID,
				"amount":            amount.StringFixed(2),
				"payment_method":    paymentMethod,
				"purchase_date":     purchaseDate.Format(time.DateOnly),
				"installment_count": len(dueDates),
			},
		},
		ExpenseID:     expenseID,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		PurchaseDate:  purchaseDate,
		DueDates:      dueDates,
	}
}

// AffectedMonths lists the first day of every month the expense contributes to,
// without duplicates and in chronological order.
func (e *ExpenseCreatedEvent) AffectedMonths() []time.Time {
	dates := e.DueDates
	if len(dates) == 0 {
		dates = []time.Time{e.PurchaseDate}
	}

	seen := make(map[time.Time]bool, len(dates))
	months := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		m := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		if seen[m] {
			continue
		}
		seen[m] = true
		months = append(months, m)
	}
	return months
}

type InstallmentStatusEvent struct {
	BaseEvent
	InstallmentID int64      `json:"installment_id"`
	ExpenseID     int64      `json:"expense_id"`
	Number        int        `json:"installment_number"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
}

func NewInstallmentStatusEvent(installmentID, expenseID int64, number int, paidDate *time.Time) *InstallmentStatusEvent {
	eventType := EventTypeInstallmentUnpaid
	data := map[string]interface{}{
		"installment_id":     installmentID,
		"expense_id":         expenseID,
		"installment_number": number,
	}
	if paidDate != nil {
		eventType = EventTypeInstallmentPaid
		data["paid_date"] = paidDate.Format(time.DateOnly)
	}

	return &InstallmentStatusEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data:      data,
		},
		InstallmentID: installmentID,
		ExpenseID:     expenseID,
		Number:        number,
		PaidDate:      paidDate,
	}
}

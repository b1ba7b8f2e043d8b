package installment

import (
	"time"

	"github.com/frahmantamala/expense-ledger/internal"
)

// Schedule places installment due dates on a fixed day of the month.
type Schedule struct {
	DueDay int
}

// NewSchedule falls back to the default due day when dueDay is outside 1..28.
func NewSchedule(dueDay int) Schedule {
	if dueDay < 1 || dueDay > internal.MaxDueDay {
		dueDay = internal.DefaultDueDay
	}
	return Schedule{DueDay: dueDay}
}

// DueDate returns the due date of installment index (0-based) for a purchase
// made on purchaseDate with a card that closes on closingDay. Purchases made
// after the closing day roll over to the next billing cycle.
func (s Schedule) DueDate(purchaseDate time.Time, closingDay, index int) (time.Time, error) {
	if closingDay < 1 || closingDay > 31 {
		return time.Time{}, internal.ErrInvalidClosingDay
	}
	if index < 0 {
		return time.Time{}, internal.ErrInvalidInstallmentIndex
	}

	anchor := time.Date(purchaseDate.Year(), purchaseDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	if purchaseDate.Day() > closingDay {
		anchor = anchor.AddDate(0, 1, 0)
	}

	return s.Shift(s.pin(anchor), index), nil
}

// Shift moves firstDue k months forward keeping the due day.
func (s Schedule) Shift(firstDue time.Time, k int) time.Time {
	month := time.Date(firstDue.Year(), firstDue.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, k, 0)
	return s.pin(month)
}

func (s Schedule) pin(monthStart time.Time) time.Time {
	day := s.DueDay
	if day < 1 {
		day = internal.DefaultDueDay
	}
	if last := daysIn(monthStart.Year(), monthStart.Month()); day > last {
		day = last
	}
	return time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

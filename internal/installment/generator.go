package installment

import (
	"github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/card"
	"github.com/frahmantamala/expense-ledger/internal/core/money"
)

// Generator turns a credit-card purchase into its installment plan. It does
// no I/O and either returns the full plan or an error.
type Generator struct {
	schedule Schedule
}

func NewGenerator(schedule Schedule) *Generator {
	return &Generator{schedule: schedule}
}

func (g *Generator) Generate(p Purchase, c *card.Card) ([]*Installment, error) {
	if p.InstallmentCount < 1 {
		return nil, internal.ErrInvalidInstallmentCount
	}
	if !p.Amount.IsPositive() {
		return nil, internal.ErrInvalidAmount
	}
	if p.CardID == nil {
		return nil, internal.ErrCardRequired
	}
	if c == nil || c.ID != *p.CardID {
		return nil, internal.ErrCardNotFound
	}
	if !c.HasClosingDay() {
		return nil, internal.ErrCardMissingClosingDay
	}

	firstDue, err := g.schedule.DueDate(p.PurchaseDate, *c.ClosingDay, 0)
	if err != nil {
		return nil, err
	}

	shares, err := money.Split(p.Amount, p.InstallmentCount)
	if err != nil {
		return nil, internal.ErrInvalidInstallmentCount.WithCause(err)
	}

	plan := make([]*Installment, p.InstallmentCount)
	for i, share := range shares {
		plan[i] = &Installment{
			CardID:            c.ID,
			Number:            i + 1,
			TotalInstallments: p.InstallmentCount,
			DueDate:           g.schedule.Shift(firstDue, i),
			Amount:            share,
			IsPaid:            false,
		}
	}
	return plan, nil
}

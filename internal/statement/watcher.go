package statement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/core/events"
	"github.com/shopspring/decimal"
)

type Builder interface {
	BuildStatement(ctx context.Context, year, month int) (*MonthlyStatement, error)
}

// Alert reports a category over its limit in a given month.
type Alert struct {
	Year       int
	Month      int
	Category   string
	TotalSpent decimal.Decimal
	Limit      decimal.Decimal
}

// LimitWatcher rebuilds the statements a new expense lands in and warns about
// categories that went over their limit.
type LimitWatcher struct {
	builder Builder
	logger  *slog.Logger
}

func NewLimitWatcher(builder Builder, logger *slog.Logger) *LimitWatcher {
	return &LimitWatcher{
		builder: builder,
		logger:  logger,
	}
}

func (w *LimitWatcher) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeExpenseCreated, w.HandleExpenseCreated)
}

func (w *LimitWatcher) HandleExpenseCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(*events.ExpenseCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	alerts, err := w.Check(ctx, created.AffectedMonths())
	if err != nil {
		return err
	}

	for _, a := range alerts {
		w.logger.Warn("spending limit exceeded",
			"expense_id", created.ExpenseID,
			"category", a.Category,
			"year", a.Year,
			"month", a.Month,
			"total_spent", a.TotalSpent.StringFixed(2),
			"limit", a.Limit.StringFixed(2))
	}
	return nil
}

// Check builds the statement of every month and collects over-limit categories.
// Months outside the supported statement range have no limits and are skipped.
func (w *LimitWatcher) Check(ctx context.Context, months []time.Time) ([]Alert, error) {
	var alerts []Alert
	for _, m := range months {
		st, err := w.builder.BuildStatement(ctx, m.Year(), int(m.Month()))
		if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeInvalidPeriod {
			w.logger.Debug("month outside statement range, skipped", "year", m.Year(), "month", int(m.Month()))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("building statement %04d-%02d: %w", m.Year(), m.Month(), err)
		}
		for _, c := range st.OverLimit() {
			alerts = append(alerts, Alert{
				Year:       st.Year,
				Month:      st.Month,
				Category:   c.Category,
				TotalSpent: c.TotalSpent,
				Limit:      *c.Limit,
			})
		}
	}
	return alerts, nil
}

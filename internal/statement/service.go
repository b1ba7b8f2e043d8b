package statement

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/core/common/validation"
	expenseDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/expense"
	installmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/installment"
	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/spendinglimit"
	"github.com/frahmantamala/expense-ledger/internal/core/money"
	"github.com/frahmantamala/expense-ledger/internal/expense"
	"github.com/frahmantamala/expense-ledger/internal/installment"
	"github.com/shopspring/decimal"
)

const uncategorized = "uncategorized"

// Source reads the stored data a statement is built from. Periods are
// half-open: from is the first day of the month, to the first day of the next.
type Source interface {
	// ExpensesInPeriod returns non credit-card expenses purchased in the
	// period with their establishment loaded.
	ExpensesInPeriod(ctx context.Context, from, to time.Time) ([]*expenseDatamodel.Expense, error)
	// InstallmentsDueInPeriod returns installments due in the period with the
	// parent expense, its establishment and the card loaded.
	InstallmentsDueInPeriod(ctx context.Context, from, to time.Time) ([]*installmentDatamodel.Installment, error)
	ActiveLimits(ctx context.Context, year, month int) ([]*spendinglimit.MonthlySpendingLimit, error)
}

type Service struct {
	source  Source
	billing internal.BillingConfig
	logger  *slog.Logger
}

func NewService(source Source, billing internal.BillingConfig, logger *slog.Logger) *Service {
	return &Service{
		source:  source,
		billing: billing.WithDefaults(),
		logger:  logger,
	}
}

// BuildStatement reconciles one month: direct expenses by purchase date plus
// credit-card installments by due date, grouped by the establishment's current
// category and compared with the month's active limits.
func (s *Service) BuildStatement(ctx context.Context, year, month int) (*MonthlyStatement, error) {
	if err := validation.ValidatePeriod(year, month, s.billing.MinYear, s.billing.MaxYear); err != nil {
		return nil, err
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	expenses, err := s.source.ExpensesInPeriod(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to load expenses for statement", "error", err, "year", year, "month", month)
		return nil, internal.NewInternalError("failed to build statement", err)
	}
	installments, err := s.source.InstallmentsDueInPeriod(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to load installments for statement", "error", err, "year", year, "month", month)
		return nil, internal.NewInternalError("failed to build statement", err)
	}
	limits, err := s.source.ActiveLimits(ctx, year, month)
	if err != nil {
		s.logger.Error("failed to load limits for statement", "error", err, "year", year, "month", month)
		return nil, internal.NewInternalError("failed to build statement", err)
	}

	groups := make(map[string][]Transaction)
	for _, e := range expenses {
		category, tx := fromExpense(e)
		groups[category] = append(groups[category], tx)
	}
	for _, item := range installments {
		category, tx := fromInstallment(item)
		groups[category] = append(groups[category], tx)
	}

	limitByCategory := make(map[string]decimal.Decimal, len(limits))
	totalLimits := decimal.Zero
	for _, l := range limits {
		limitByCategory[l.Category] = l.Amount
		totalLimits = totalLimits.Add(l.Amount)
	}

	st := &MonthlyStatement{
		Year:       year,
		Month:      month,
		Categories: make([]CategorySummary, 0, len(groups)),
	}

	totalExpenses := decimal.Zero
	for category, txs := range groups {
		summary := summarize(category, txs)
		if limit, ok := limitByCategory[category]; ok {
			applyLimit(&summary, limit)
		}
		totalExpenses = totalExpenses.Add(summary.TotalSpent)
		st.Categories = append(st.Categories, summary)
	}

	sort.Slice(st.Categories, func(i, j int) bool {
		a, b := st.Categories[i], st.Categories[j]
		if cmp := a.TotalSpent.Cmp(b.TotalSpent); cmp != 0 {
			return cmp > 0
		}
		return a.Category < b.Category
	})

	st.TotalExpenses = totalExpenses
	st.TotalLimits = totalLimits
	st.AvailableBalance = totalLimits.Sub(totalExpenses)
	st.PercentageUsed = money.Percentage(totalExpenses, totalLimits)

	s.logger.Debug("statement built",
		"year", year,
		"month", month,
		"categories", len(st.Categories),
		"total_expenses", st.TotalExpenses.StringFixed(2))

	return st, nil
}

func summarize(category string, txs []Transaction) CategorySummary {
	sort.Slice(txs, func(i, j int) bool {
		a, b := txs[i], txs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.ExpenseID != b.ExpenseID {
			return a.ExpenseID > b.ExpenseID
		}
		return a.InstallmentNumber > b.InstallmentNumber
	})

	spent := decimal.Zero
	for _, tx := range txs {
		spent = spent.Add(tx.Amount)
	}

	return CategorySummary{
		Category:     category,
		TotalSpent:   spent,
		Transactions: txs,
	}
}

func applyLimit(summary *CategorySummary, limit decimal.Decimal) {
	available := limit.Sub(summary.TotalSpent)
	percentage := money.Percentage(summary.TotalSpent, limit)
	over := summary.TotalSpent.GreaterThan(limit)

	summary.Limit = &limit
	summary.AvailableBalance = &available
	summary.PercentageUsed = &percentage
	summary.IsOverLimit = &over
}

func fromExpense(e *expenseDatamodel.Expense) (string, Transaction) {
	category, shop := uncategorized, ""
	if e.Establishment != nil {
		category, shop = e.Establishment.Category, e.Establishment.Name
	}

	return category, Transaction{
		ExpenseID:     e.ID,
		Date:          e.PurchaseDate.UTC(),
		Description:   e.Description,
		Establishment: shop,
		Amount:        e.Amount,
		PaymentMethod: expense.PaymentMethod(e.PaymentMethod).Label(),
	}
}

func fromInstallment(item *installmentDatamodel.Installment) (string, Transaction) {
	category, shop, description := uncategorized, "", ""
	if item.Expense != nil {
		description = item.Expense.Description
		if item.Expense.Establishment != nil {
			category, shop = item.Expense.Establishment.Category, item.Expense.Establishment.Name
		}
	}

	card := &CardRef{ID: item.CardID}
	if item.Card != nil {
		card.Name, card.LastFourDigits = item.Card.Name, item.Card.LastFourDigits
	}

	id := item.ID
	return category, Transaction{
		ExpenseID:         item.ExpenseID,
		InstallmentID:     &id,
		Date:              item.DueDate.UTC(),
		Description:       description,
		Establishment:     shop,
		Amount:            item.Amount,
		PaymentMethod:     expense.PaymentMethodCreditCard.Label(),
		Card:              card,
		Installment:       installment.FromDataModel(item).Label(),
		InstallmentNumber: item.Number,
	}
}

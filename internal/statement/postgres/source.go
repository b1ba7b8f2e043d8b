package postgres

import (
	"context"
	"time"

	expenseDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/expense"
	installmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/installment"
	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/spendinglimit"
	"github.com/frahmantamala/expense-ledger/internal/expense"
	"github.com/frahmantamala/expense-ledger/internal/statement"
	"gorm.io/gorm"
)

type StatementSource struct {
	db *gorm.DB
}

func NewStatementSource(db *gorm.DB) statement.Source {
	return &StatementSource{db: db}
}

func (s *StatementSource) ExpensesInPeriod(ctx context.Context, from, to time.Time) ([]*expenseDatamodel.Expense, error) {
	var rows []*expenseDatamodel.Expense
	err := s.db.WithContext(ctx).
		Preload("Establishment").
		Where("purchase_date >= ? AND purchase_date < ?", from, to).
		Where("payment_method <> ?", string(expense.PaymentMethodCreditCard)).
		Find(&rows).Error
	return rows, err
}

// InstallmentsDueInPeriod skips installments whose expense was soft deleted.
func (s *StatementSource) InstallmentsDueInPeriod(ctx context.Context, from, to time.Time) ([]*installmentDatamodel.Installment, error) {
	var rows []*installmentDatamodel.Installment
	err := s.db.WithContext(ctx).
		Joins("JOIN expenses ON expenses.id = credit_card_installments.expense_id AND expenses.deleted_at IS NULL").
		Preload("Expense.Establishment").
		Preload("Card").
		Where("credit_card_installments.due_date >= ? AND credit_card_installments.due_date < ?", from, to).
		Find(&rows).Error
	return rows, err
}

func (s *StatementSource) ActiveLimits(ctx context.Context, year, month int) ([]*spendinglimit.MonthlySpendingLimit, error) {
	var rows []*spendinglimit.MonthlySpendingLimit
	err := s.db.WithContext(ctx).
		Where("year = ? AND month = ? AND is_active = ?", year, month, true).
		Find(&rows).Error
	return rows, err
}

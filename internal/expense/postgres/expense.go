package postgres

import (
	"context"
	"errors"

	expenseDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/expense"
	installmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/installment"
	"github.com/frahmantamala/expense-ledger/internal/expense"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const installmentBatchSize = 100

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

// CreateWithInstallments inserts the expense and its installments in one
// transaction. Nothing is written when any insert fails.
func (r *ExpenseRepository) CreateWithInstallments(ctx context.Context, e *expenseDatamodel.Expense, items []*installmentDatamodel.Installment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for _, item := range items {
			item.ExpenseID = e.ID
		}
		return tx.Omit(clause.Associations).CreateInBatches(items, installmentBatchSize).Error
	})
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*expenseDatamodel.Expense, error) {
	var e expenseDatamodel.Expense
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&expenseDatamodel.Expense{}, id).Error
}

package postgres

import (
	"context"
	"errors"
	"time"

	installmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/installment"
	"github.com/frahmantamala/expense-ledger/internal/installment"
	"gorm.io/gorm"
)

type InstallmentRepository struct {
	db *gorm.DB
}

func NewInstallmentRepository(db *gorm.DB) installment.RepositoryAPI {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) GetByID(ctx context.Context, id int64) (*installmentDatamodel.Installment, error) {
	var item installmentDatamodel.Installment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *InstallmentRepository) ListByExpense(ctx context.Context, expenseID int64) ([]*installmentDatamodel.Installment, error) {
	var items []*installmentDatamodel.Installment
	err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("installment_number ASC").
		Find(&items).Error
	return items, err
}

func (r *InstallmentRepository) UpdatePaid(ctx context.Context, id int64, isPaid bool, paidDate *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&installmentDatamodel.Installment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_paid":   isPaid,
			"paid_date": paidDate,
		}).Error
}

package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/spendinglimit"
	limitService "github.com/frahmantamala/expense-ledger/internal/spendinglimit"
	"gorm.io/gorm"
)

type LimitRepository struct {
	db *gorm.DB
}

func NewLimitRepository(db *gorm.DB) limitService.RepositoryAPI {
	return &LimitRepository{db: db}
}

func (r *LimitRepository) Create(ctx context.Context, l *spendinglimit.MonthlySpendingLimit) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LimitRepository) first(ctx context.Context, query string, args ...interface{}) (*spendinglimit.MonthlySpendingLimit, error) {
	var l spendinglimit.MonthlySpendingLimit
	err := r.db.WithContext(ctx).Where(query, args...).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LimitRepository) GetByID(ctx context.Context, id int64) (*spendinglimit.MonthlySpendingLimit, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *LimitRepository) GetByKey(ctx context.Context, category string, month, year int) (*spendinglimit.MonthlySpendingLimit, error) {
	return r.first(ctx, "category = ? AND month = ? AND year = ?", category, month, year)
}

func (r *LimitRepository) ListByPeriod(ctx context.Context, month, year int) ([]*spendinglimit.MonthlySpendingLimit, error) {
	var limits []*spendinglimit.MonthlySpendingLimit
	err := r.db.WithContext(ctx).
		Where("month = ? AND year = ?", month, year).
		Order("category ASC").
		Find(&limits).Error
	return limits, err
}

// Update saves every column so a false IsActive is written.
func (r *LimitRepository) Update(ctx context.Context, l *spendinglimit.MonthlySpendingLimit) error {
	return r.db.WithContext(ctx).Save(l).Error
}

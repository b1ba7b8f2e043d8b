package postgres

import (
	"context"
	"errors"

	establishmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/establishment"
	"github.com/frahmantamala/expense-ledger/internal/establishment"
	"gorm.io/gorm"
)

type EstablishmentRepository struct {
	db *gorm.DB
}

func NewEstablishmentRepository(db *gorm.DB) establishment.RepositoryAPI {
	return &EstablishmentRepository{db: db}
}

func (r *EstablishmentRepository) Create(ctx context.Context, e *establishmentDatamodel.Establishment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EstablishmentRepository) GetByID(ctx context.Context, id int64) (*establishmentDatamodel.Establishment, error) {
	var e establishmentDatamodel.Establishment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EstablishmentRepository) GetAll(ctx context.Context) ([]*establishmentDatamodel.Establishment, error) {
	var items []*establishmentDatamodel.Establishment
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *EstablishmentRepository) UpdateCategory(ctx context.Context, id int64, category string) error {
	return r.db.WithContext(ctx).
		Model(&establishmentDatamodel.Establishment{}).
		Where("id = ?", id).
		Update("category", category).Error
}

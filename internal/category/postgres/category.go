package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/expense-ledger/internal/category"
	categoryDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]*categoryDatamodel.SpendingCategory, error) {
	var items []*categoryDatamodel.SpendingCategory
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*categoryDatamodel.SpendingCategory, error) {
	var c categoryDatamodel.SpendingCategory
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *categoryDatamodel.SpendingCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) Save(ctx context.Context, c *categoryDatamodel.SpendingCategory) error {
	return r.db.WithContext(ctx).
		Model(&categoryDatamodel.SpendingCategory{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{"description": c.Description, "is_active": c.IsActive}).Error
}

func (r *CategoryRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&categoryDatamodel.SpendingCategory{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/expense-ledger/internal/card"
	cardDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/card"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) card.RepositoryAPI {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, c *cardDatamodel.Card) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CardRepository) GetByID(ctx context.Context, id int64) (*cardDatamodel.Card, error) {
	var c cardDatamodel.Card
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CardRepository) GetAll(ctx context.Context) ([]*cardDatamodel.Card, error) {
	var cards []*cardDatamodel.Card
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cards).Error
	return cards, err
}

// UpdateClosingDay writes the column explicitly so a nil value clears it.
func (r *CardRepository) UpdateClosingDay(ctx context.Context, id int64, closingDay *int) error {
	return r.db.WithContext(ctx).
		Model(&cardDatamodel.Card{}).
		Where("id = ?", id).
		Update("closing_day", closingDay).Error
}

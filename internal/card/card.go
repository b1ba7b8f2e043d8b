package card

import (
	"strings"
	"time"

	cardDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/card"
)

type Card struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	LastFourDigits string    `json:"last_four_digits"`
	Brand          string    `json:"brand"`
	ClosingDay     *int      `json:"closing_day,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasClosingDay reports whether the card can back an installment purchase.
func (c *Card) HasClosingDay() bool {
	return c.ClosingDay != nil
}

func NewCard(dto CreateCardDTO) *Card {
	now := time.Now()
	return &Card{
		Name:           strings.TrimSpace(dto.Name),
		LastFourDigits: dto.LastFourDigits,
		Brand:          strings.TrimSpace(dto.Brand),
		ClosingDay:     dto.ClosingDay,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func ToDataModel(c *Card) *cardDatamodel.Card {
	return &cardDatamodel.Card{
		ID:             c.ID,
		Name:           c.Name,
		LastFourDigits: c.LastFourDigits,
		Brand:          c.Brand,
		ClosingDay:     c.ClosingDay,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func FromDataModel(c *cardDatamodel.Card) *Card {
	if c == nil {
		return nil
	}
	return &Card{
		ID:             c.ID,
		Name:           c.Name,
		LastFourDigits: c.LastFourDigits,
		Brand:          c.Brand,
		ClosingDay:     c.ClosingDay,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func FromDataModelSlice(cards []*cardDatamodel.Card) []*Card {
	result := make([]*Card, len(cards))
	for i, c := range cards {
		result[i] = FromDataModel(c)
	}
	return result
}

package card

import (
	errors "github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/core/common/validation"
)

// CreateCardDTO represents the request payload for registering a card
type CreateCardDTO struct {
	Name           string `json:"name"`
	LastFourDigits string `json:"last_four_digits"`
	Brand          string `json:"brand"`
	ClosingDay     *int   `json:"closing_day,omitempty"`
}

func (dto CreateCardDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("last_four_digits", dto.LastFourDigits).Required().Digits(4)
	v.Field("brand", dto.Brand).MaxLength(50)
	v.Field("closing_day", dto.ClosingDay).IntRange(1, 31, errors.ErrCodeInvalidClosingDay)
	return v.Validate()
}

// UpdateClosingDayDTO sets or clears the billing-cycle closing day. Existing
// installments keep their due dates.
type UpdateClosingDayDTO struct {
	ClosingDay *int `json:"closing_day"`
}

func (dto UpdateClosingDayDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("closing_day", dto.ClosingDay).IntRange(1, 31, errors.ErrCodeInvalidClosingDay)
	return v.Validate()
}

type CardsResponse struct {
	Cards []*Card `json:"cards"`
}

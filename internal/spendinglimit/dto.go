package spendinglimit

import (
	errors "github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type CreateLimitDTO struct {
	Category string          `json:"category"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Amount   decimal.Decimal `json:"amount"`
}

func (dto CreateLimitDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("category", dto.Category).Required().MaxLength(64)
	v.Field("amount", dto.Amount).NonNegativeDecimal(errors.ErrCodeInvalidAmount)
	return v.Validate()
}

// UpdateLimitDTO changes the amount, the active flag, or both.
type UpdateLimitDTO struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

func (dto UpdateLimitDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Amount != nil {
		v.Field("amount", *dto.Amount).NonNegativeDecimal(errors.ErrCodeInvalidAmount)
	}
	if dto.Amount == nil && dto.IsActive == nil {
		return errors.NewValidationError("nothing to update", errors.ErrCodeValidationFailed)
	}
	return v.Validate()
}

type LimitsResponse struct {
	Limits []*Limit `json:"limits"`
}

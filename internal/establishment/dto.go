package establishment

import (
	errors "github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/core/common/validation"
)

type CreateEstablishmentDTO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (dto CreateEstablishmentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(150)
	v.Field("category", dto.Category).Required().MaxLength(64)
	return v.Validate()
}

type UpdateCategoryDTO struct {
	Category string `json:"category"`
}

func (dto UpdateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("category", dto.Category).Required().MaxLength(64)
	return v.Validate()
}

type EstablishmentsResponse struct {
	Establishments []*Establishment `json:"establishments"`
}

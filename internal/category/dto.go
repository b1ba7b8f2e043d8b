package category

import (
	errors "github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/core/common/validation"
)

type CategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto CreateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", NormalizeName(dto.Name)).Required().MaxLength(64)
	v.Field("description", dto.Description).MaxLength(255)
	return v.Validate()
}

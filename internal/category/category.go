package category

import (
	"strings"

	categoryDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/category"
)

// Category is a spending category tag. New establishments and limits may only
// reference an active one; deactivating it leaves existing references alone.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// NormalizeName is the canonical form of a category tag: trimmed and lower case.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func NewCategory(dto CreateCategoryDTO) *Category {
	return &Category{
		Name:        NormalizeName(dto.Name),
		Description: strings.TrimSpace(dto.Description),
		IsActive:    true,
	}
}

// Reactivate brings a deactivated tag back. An empty description keeps the old one.
func (c *Category) Reactivate(description string) {
	c.IsActive = true
	if d := strings.TrimSpace(description); d != "" {
		c.Description = d
	}
}

func ToDataModel(c *Category) *categoryDatamodel.SpendingCategory {
	return &categoryDatamodel.SpendingCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

func FromDataModel(m *categoryDatamodel.SpendingCategory) *Category {
	return &Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
	}
}

package establishment

import (
	"strings"
	"time"

	"github.com/frahmantamala/expense-ledger/internal/category"
	establishmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/establishment"
)

// Establishment is where a purchase happens. Its category is the grouping key
// of monthly statements and may be changed at any time.
type Establishment struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewEstablishment(dto CreateEstablishmentDTO) *Establishment {
	now := time.Now()
	return &Establishment{
		Name:      strings.TrimSpace(dto.Name),
		Category:  category.NormalizeName(dto.Category),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToDataModel(e *Establishment) *establishmentDatamodel.Establishment {
	return &establishmentDatamodel.Establishment{
		ID:        e.ID,
		Name:      e.Name,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func FromDataModel(e *establishmentDatamodel.Establishment) *Establishment {
	if e == nil {
		return nil
	}
	return &Establishment{
		ID:        e.ID,
		Name:      e.Name,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

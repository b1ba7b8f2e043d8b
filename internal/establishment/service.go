package establishment

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/category"
	establishmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/establishment"
)

type RepositoryAPI interface {
	Create(ctx context.Context, e *establishmentDatamodel.Establishment) error
	GetByID(ctx context.Context, id int64) (*establishmentDatamodel.Establishment, error)
	GetAll(ctx context.Context) ([]*establishmentDatamodel.Establishment, error)
	UpdateCategory(ctx context.Context, id int64, category string) error
}

// CategoryChecker reports whether a category name is an active spending category.
type CategoryChecker interface {
	IsValidCategory(ctx context.Context, name string) bool
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryChecker
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		logger:     logger,
	}
}

func (s *Service) CreateEstablishment(ctx context.Context, dto CreateEstablishmentDTO) (*Establishment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e := NewEstablishment(dto)
	if !s.categories.IsValidCategory(ctx, e.Category) {
		return nil, errors.ErrInvalidCategory.WithDetails(map[string]string{"category": e.Category})
	}

	model := ToDataModel(e)
	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create establishment", "error", err)
		return nil, errors.NewInternalError("failed to create establishment", err)
	}

	s.logger.Info("establishment created", "establishment_id", model.ID, "category", model.Category)
	return FromDataModel(model), nil
}

func (s *Service) GetEstablishment(ctx context.Context, id int64) (*Establishment, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get establishment", "error", err, "establishment_id", id)
		return nil, errors.NewInternalError("failed to get establishment", err)
	}
	if model == nil {
		return nil, errors.ErrEstablishmentNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) ListEstablishments(ctx context.Context) ([]*Establishment, error) {
	models, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list establishments", "error", err)
		return nil, errors.NewInternalError("failed to list establishments", err)
	}

	result := make([]*Establishment, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result, nil
}

// UpdateCategory moves the establishment to another category. Statements are
// grouped by the current category, so past months are regrouped too.
func (s *Service) UpdateCategory(ctx context.Context, id int64, dto UpdateCategoryDTO) (*Establishment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	current, err := s.GetEstablishment(ctx, id)
	if err != nil {
		return nil, err
	}

	name := category.NormalizeName(dto.Category)
	if name == current.Category {
		return current, nil
	}
	if !s.categories.IsValidCategory(ctx, name) {
		return nil, errors.ErrInvalidCategory.WithDetails(map[string]string{"category": name})
	}

	if err := s.repo.UpdateCategory(ctx, id, name); err != nil {
		s.logger.Error("failed to update establishment category", "error", err, "establishment_id", id)
		return nil, errors.NewInternalError("failed to update establishment", err)
	}

	s.logger.Info("establishment reattributed", "establishment_id", id, "from", current.Category, "to", name)
	return s.GetEstablishment(ctx, id)
}

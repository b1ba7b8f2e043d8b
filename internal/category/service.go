package category

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/expense-ledger/internal"
	categoryDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	ListActive(ctx context.Context) ([]*categoryDatamodel.SpendingCategory, error)
	GetByName(ctx context.Context, name string) (*categoryDatamodel.SpendingCategory, error)
	Create(ctx context.Context, c *categoryDatamodel.SpendingCategory) error
	Save(ctx context.Context, c *categoryDatamodel.SpendingCategory) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	models, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, errors.NewInternalError("failed to list categories", err)
	}

	result := make([]*Category, 0, len(models))
	for _, m := range models {
		result = append(result, FromDataModel(m))
	}
	return result, nil
}

// GetCategory looks a tag up by name; inactive tags count as missing.
func (s *Service) GetCategory(ctx context.Context, name string) (*Category, error) {
	model, err := s.repo.GetByName(ctx, NormalizeName(name))
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "name", name)
		return nil, errors.NewInternalError("failed to get category", err)
	}
	if model == nil || !model.IsActive {
		return nil, errors.ErrCategoryNotFound
	}
	return FromDataModel(model), nil
}

// IsValidCategory reports whether name is an active catalog entry.
func (s *Service) IsValidCategory(ctx context.Context, name string) bool {
	_, err := s.GetCategory(ctx, name)
	if err != nil && err != errors.ErrCategoryNotFound {
		s.logger.Warn("error checking category validity", "name", name, "error", err)
	}
	return err == nil
}

func (s *Service) CreateCategory(ctx context.Context, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := NewCategory(dto)
	existing, err := s.repo.GetByName(ctx, c.Name)
	if err != nil {
		s.logger.Error("failed to look up category", "error", err, "name", c.Name)
		return nil, errors.NewInternalError("failed to create category", err)
	}

	if existing != nil {
		if existing.IsActive {
			return nil, errors.ErrCategoryExists
		}
		// same unique name, so the old row comes back instead of a new insert
		found := FromDataModel(existing)
		found.Reactivate(dto.Description)
		if err := s.repo.Save(ctx, ToDataModel(found)); err != nil {
			s.logger.Error("failed to reactivate category", "error", err, "name", c.Name)
			return nil, errors.NewInternalError("failed to create category", err)
		}
		s.logger.Info("category reactivated", "name", found.Name, "category_id", found.ID)
		return found, nil
	}

	model := ToDataModel(c)
	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", c.Name)
		return nil, errors.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "name", model.Name, "category_id", model.ID)
	return FromDataModel(model), nil
}

// DeactivateCategory retires a tag. Establishments and limits already tagged
// with it keep the tag, so past statements still group under it.
func (s *Service) DeactivateCategory(ctx context.Context, name string) error {
	model, err := s.repo.GetByName(ctx, NormalizeName(name))
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "name", name)
		return errors.NewInternalError("failed to deactivate category", err)
	}
	if model == nil {
		return errors.ErrCategoryNotFound
	}
	if !model.IsActive {
		return nil
	}

	if err := s.repo.SetActive(ctx, model.ID, false); err != nil {
		s.logger.Error("failed to deactivate category", "error", err, "name", model.Name)
		return errors.NewInternalError("failed to deactivate category", err)
	}

	s.logger.Info("category deactivated", "name", model.Name, "category_id", model.ID)
	return nil
}

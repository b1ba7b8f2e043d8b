package spendinglimit

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/core/common/validation"
	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/spendinglimit"
	"github.com/frahmantamala/expense-ledger/internal/core/money"
)

// RepositoryAPI stores limits. GetByID and GetByKey return nil, nil when
// nothing matches; GetByKey ignores the active flag.
type RepositoryAPI interface {
	Create(ctx context.Context, l *spendinglimit.MonthlySpendingLimit) error
	GetByID(ctx context.Context, id int64) (*spendinglimit.MonthlySpendingLimit, error)
	GetByKey(ctx context.Context, category string, month, year int) (*spendinglimit.MonthlySpendingLimit, error)
	ListByPeriod(ctx context.Context, month, year int) ([]*spendinglimit.MonthlySpendingLimit, error)
	Update(ctx context.Context, l *spendinglimit.MonthlySpendingLimit) error
}

type CategoryChecker interface {
	IsValidCategory(ctx context.Context, name string) bool
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryChecker
	billing    internal.BillingConfig
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryChecker, billing internal.BillingConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		billing:    billing.WithDefaults(),
		logger:     logger,
	}
}

// CreateLimit registers a limit for (category, month, year). An inactive limit
// with the same key is reactivated with the new amount; an active one is a
// conflict.
func (s *Service) CreateLimit(ctx context.Context, dto CreateLimitDTO) (*Limit, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := validation.ValidatePeriod(dto.Year, dto.Month, s.billing.MinYear, s.billing.MaxYear); err != nil {
		return nil, err
	}

	limit := NewLimit(dto)
	if !s.categories.IsValidCategory(ctx, limit.Category) {
		return nil, internal.ErrInvalidCategory.WithDetails(map[string]string{"category": limit.Category})
	}

	existing, err := s.repo.GetByKey(ctx, limit.Category, limit.Month, limit.Year)
	if err != nil {
		s.logger.Error("failed to look up spending limit", "error", err, "category", limit.Category)
		return nil, internal.NewInternalError("failed to create spending limit", err)
	}

	if existing != nil {
		if existing.IsActive {
			return nil, internal.ErrLimitExists.WithDetails(map[string]interface{}{
				"category": limit.Category,
				"month":    limit.Month,
				"year":     limit.Year,
			})
		}
		existing.IsActive = true
		existing.Amount = limit.Amount
		if err := s.repo.Update(ctx, existing); err != nil {
			s.logger.Error("failed to reactivate spending limit", "error", err, "limit_id", existing.ID)
			return nil, internal.NewInternalError("failed to create spending limit", err)
		}
		s.logger.Info("spending limit reactivated", "limit_id", existing.ID, "category", existing.Category)
		return FromDataModel(existing), nil
	}

	model := ToDataModel(limit)
	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create spending limit", "error", err, "category", limit.Category)
		return nil, internal.NewInternalError("failed to create spending limit", err)
	}

	s.logger.Info("spending limit created", "limit_id", model.ID, "category", model.Category, "month", model.Month, "year", model.Year)
	return FromDataModel(model), nil
}

func (s *Service) GetLimit(ctx context.Context, id int64) (*Limit, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get spending limit", "error", err, "limit_id", id)
		return nil, internal.NewInternalError("failed to get spending limit", err)
	}
	if model == nil {
		return nil, internal.ErrLimitNotFound
	}
	return FromDataModel(model), nil
}

// ListByPeriod returns active and inactive limits of a month ordered by category.
func (s *Service) ListByPeriod(ctx context.Context, year, month int) ([]*Limit, error) {
	if err := validation.ValidatePeriod(year, month, s.billing.MinYear, s.billing.MaxYear); err != nil {
		return nil, err
	}

	models, err := s.repo.ListByPeriod(ctx, month, year)
	if err != nil {
		s.logger.Error("failed to list spending limits", "error", err, "month", month, "year", year)
		return nil, internal.NewInternalError("failed to list spending limits", err)
	}

	result := make([]*Limit, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result, nil
}

func (s *Service) UpdateLimit(ctx context.Context, id int64, dto UpdateLimitDTO) (*Limit, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get spending limit", "error", err, "limit_id", id)
		return nil, internal.NewInternalError("failed to update spending limit", err)
	}
	if model == nil {
		return nil, internal.ErrLimitNotFound
	}

	if dto.Amount != nil {
		model.Amount = money.Round(*dto.Amount)
	}
	if dto.IsActive != nil {
		model.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(ctx, model); err != nil {
		s.logger.Error("failed to update spending limit", "error", err, "limit_id", id)
		return nil, internal.NewInternalError("failed to update spending limit", err)
	}

	s.logger.Info("spending limit updated", "limit_id", id, "amount", model.Amount.StringFixed(2), "is_active", model.IsActive)
	return FromDataModel(model), nil
}

// DeactivateLimit hides the limit from statements without deleting it.
func (s *Service) DeactivateLimit(ctx context.Context, id int64) (*Limit, error) {
	inactive := false
	return s.UpdateLimit(ctx, id, UpdateLimitDTO{IsActive: &inactive})
}

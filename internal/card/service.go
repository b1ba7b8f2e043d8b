package card

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/expense-ledger/internal"
	cardDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/card"
)

// RepositoryAPI is the card storage. GetByID returns nil, nil when the card
// does not exist.
type RepositoryAPI interface {
	Create(ctx context.Context, c *cardDatamodel.Card) error
	GetByID(ctx context.Context, id int64) (*cardDatamodel.Card, error)
	GetAll(ctx context.Context) ([]*cardDatamodel.Card, error)
	UpdateClosingDay(ctx context.Context, id int64, closingDay *int) error
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

func (s *Service) CreateCard(ctx context.Context, dto CreateCardDTO) (*Card, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("card validation failed", "error", err)
		return nil, err
	}

	model := ToDataModel(NewCard(dto))
	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to create card", "error", err)
		return nil, errors.NewInternalError("failed to create card", err)
	}

	s.logger.Info("card created", "card_id", model.ID, "has_closing_day", model.ClosingDay != nil)
	return FromDataModel(model), nil
}

// GetCard returns ErrCardNotFound when the card is absent.
func (s *Service) GetCard(ctx context.Context, id int64) (*Card, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get card", "error", err, "card_id", id)
		return nil, errors.NewInternalError("failed to get card", err)
	}
	if model == nil {
		return nil, errors.ErrCardNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) ListCards(ctx context.Context) ([]*Card, error) {
	models, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list cards", "error", err)
		return nil, errors.NewInternalError("failed to list cards", err)
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) UpdateClosingDay(ctx context.Context, id int64, dto UpdateClosingDayDTO) (*Card, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetCard(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateClosingDay(ctx, id, dto.ClosingDay); err != nil {
		s.logger.Error("failed to update closing day", "error", err, "card_id", id)
		return nil, errors.NewInternalError("failed to update card", err)
	}

	s.logger.Info("card closing day updated", "card_id", id, "closing_day", dto.ClosingDay)
	return s.GetCard(ctx, id)
}

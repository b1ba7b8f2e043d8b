package installment

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/expense-ledger/internal"
	installmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/installment"
	"github.com/frahmantamala/expense-ledger/internal/core/events"
)

// RepositoryAPI is the installment storage. Installments are written together
// with their expense, so only the paid flag is updated here.
type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*installmentDatamodel.Installment, error)
	ListByExpense(ctx context.Context, expenseID int64) ([]*installmentDatamodel.Installment, error)
	UpdatePaid(ctx context.Context, id int64, isPaid bool, paidDate *time.Time) error
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) GetInstallment(ctx context.Context, id int64) (*Installment, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get installment", "error", err, "installment_id", id)
		return nil, errors.NewInternalError("failed to get installment", err)
	}
	if model == nil {
		return nil, errors.ErrInstallmentNotFound
	}
	return FromDataModel(model), nil
}

// ListByExpense returns the installments of an expense ordered by number.
func (s *Service) ListByExpense(ctx context.Context, expenseID int64) ([]*Installment, error) {
	models, err := s.repo.ListByExpense(ctx, expenseID)
	if err != nil {
		s.logger.Error("failed to list installments", "error", err, "expense_id", expenseID)
		return nil, errors.NewInternalError("failed to list installments", err)
	}
	return FromDataModelSlice(models), nil
}

// MarkPaid flags the installment as paid on paidDate. Paying an already paid
// installment is a no-op and keeps the original paid date.
func (s *Service) MarkPaid(ctx context.Context, id int64, paidDate time.Time) (*Installment, error) {
	current, err := s.GetInstallment(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsPaid {
		return current, nil
	}

	paid := time.Date(paidDate.Year(), paidDate.Month(), paidDate.Day(), 0, 0, 0, 0, time.UTC)
	if err := s.repo.UpdatePaid(ctx, id, true, &paid); err != nil {
		s.logger.Error("failed to mark installment paid", "error", err, "installment_id", id)
		return nil, errors.NewInternalError("failed to update installment", err)
	}

	current.IsPaid = true
	current.PaidDate = &paid
	s.logger.Info("installment paid", "installment_id", id, "expense_id", current.ExpenseID, "installment", current.Label())
	s.publish(ctx, events.NewInstallmentStatusEvent(current.ID, current.ExpenseID, current.Number, &paid))

	return current, nil
}

// MarkUnpaid clears the paid flag. Unpaid installments are returned unchanged.
func (s *Service) MarkUnpaid(ctx context.Context, id int64) (*Installment, error) {
	current, err := s.GetInstallment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.IsPaid {
		return current, nil
	}

	if err := s.repo.UpdatePaid(ctx, id, false, nil); err != nil {
		s.logger.Error("failed to mark installment unpaid", "error", err, "installment_id", id)
		return nil, errors.NewInternalError("failed to update installment", err)
	}

	current.IsPaid = false
	current.PaidDate = nil
	s.logger.Info("installment unpaid", "installment_id", id, "expense_id", current.ExpenseID, "installment", current.Label())
	s.publish(ctx, events.NewInstallmentStatusEvent(current.ID, current.ExpenseID, current.Number, nil))

	return current, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

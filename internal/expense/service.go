package expense

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/card"
	expenseDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/expense"
	installmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/installment"
	"github.com/frahmantamala/expense-ledger/internal/core/events"
	"github.com/frahmantamala/expense-ledger/internal/establishment"
	"github.com/frahmantamala/expense-ledger/internal/installment"
)

// RepositoryAPI is the expense storage. CreateWithInstallments writes the
// expense and its plan atomically and sets ExpenseID on every installment.
type RepositoryAPI interface {
	CreateWithInstallments(ctx context.Context, e *expenseDatamodel.Expense, items []*installmentDatamodel.Installment) error
	GetByID(ctx context.Context, id int64) (*expenseDatamodel.Expense, error)
	SoftDelete(ctx context.Context, id int64) error
}

type CardLookup interface {
	GetCard(ctx context.Context, id int64) (*card.Card, error)
}

type EstablishmentLookup interface {
	GetEstablishment(ctx context.Context, id int64) (*establishment.Establishment, error)
}

type InstallmentLister interface {
	ListByExpense(ctx context.Context, expenseID int64) ([]*installment.Installment, error)
}

type Service struct {
	repo           RepositoryAPI
	cards          CardLookup
	establishments EstablishmentLookup
	installments   InstallmentLister
	generator      *installment.Generator
	publisher      events.Publisher
	logger         *slog.Logger
}

func NewService(
	repo RepositoryAPI,
	cards CardLookup,
	establishments EstablishmentLookup,
	installments InstallmentLister,
	generator *installment.Generator,
	publisher events.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:           repo,
		cards:          cards,
		establishments: establishments,
		installments:   installments,
		generator:      generator,
		publisher:      publisher,
		logger:         logger,
	}
}

// CreateExpense records an expense. Credit-card purchases get their full
// installment plan stored in the same transaction.
func (s *Service) CreateExpense(ctx context.Context, dto CreateExpenseDTO) (*ExpenseDetail, error) {
	e, appErr := NewExpense(dto)
	if appErr != nil {
		s.logger.Warn("expense validation failed", "error", appErr.GetDetailedMessage())
		return nil, appErr
	}

	shop, err := s.establishments.GetEstablishment(ctx, e.EstablishmentID)
	if err != nil {
		return nil, err
	}

	var plan []*installment.Installment
	if e.PaymentMethod.RequiresCard() {
		c, err := s.cards.GetCard(ctx, *e.CardID)
		if err != nil {
			return nil, err
		}

		if e.IsCreditCard() {
			plan, err = s.generator.Generate(installment.Purchase{
				Amount:           e.Amount,
				PurchaseDate:     e.PurchaseDate,
				CardID:           e.CardID,
				InstallmentCount: e.InstallmentCount,
			}, c)
			if err != nil {
				s.logger.Warn("installment plan rejected", "error", err, "card_id", c.ID)
				return nil, err
			}
		}
	}

	model := ToDataModel(e)
	items := installment.ToDataModelSlice(plan)
	if err := s.repo.CreateWithInstallments(ctx, model, items); err != nil {
		s.logger.Error("failed to create expense", "error", err)
		return nil, errors.NewInternalError("failed to create expense", err)
	}

	created := FromDataModel(model)
	persisted := installment.FromDataModelSlice(items)
	dueDates := make([]time.Time, len(persisted))
	for i, item := range persisted {
		dueDates[i] = item.DueDate
	}

	s.logger.Info("expense created",
		"expense_id", created.ID,
		"amount", created.Amount.StringFixed(2),
		"payment_method", created.PaymentMethod,
		"installments", len(persisted))

	event := events.NewExpenseCreatedEvent(created.ID, created.Amount, string(created.PaymentMethod), created.PurchaseDate, dueDates)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish expense created event", "error", err, "expense_id", created.ID)
		}
	}

	return &ExpenseDetail{
		Expense:            created,
		PaymentMethodLabel: created.PaymentMethod.Label(),
		Establishment:      shop,
		Installments:       persisted,
	}, nil
}

func (s *Service) getExpense(ctx context.Context, id int64) (*Expense, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, errors.NewInternalError("failed to get expense", err)
	}
	if model == nil {
		return nil, errors.ErrExpenseNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) GetExpense(ctx context.Context, id int64) (*ExpenseDetail, error) {
	e, err := s.getExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	shop, err := s.establishments.GetEstablishment(ctx, e.EstablishmentID)
	if err != nil {
		return nil, err
	}

	detail := &ExpenseDetail{
		Expense:            e,
		PaymentMethodLabel: e.PaymentMethod.Label(),
		Establishment:      shop,
	}
	if e.IsCreditCard() {
		detail.Installments, err = s.installments.ListByExpense(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// ListInstallments returns the plan of an expense; non credit-card expenses
// have an empty plan.
func (s *Service) ListInstallments(ctx context.Context, expenseID int64) ([]*installment.Installment, error) {
	if _, err := s.getExpense(ctx, expenseID); err != nil {
		return nil, err
	}

	items, err := s.installments.ListByExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*installment.Installment{}
	}
	return items, nil
}

// DeleteExpense soft-deletes the expense. Its installments stay stored but
// drop out of statements with it.
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	if _, err := s.getExpense(ctx, id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return errors.NewInternalError("failed to delete expense", err)
	}

	s.logger.Info("expense deleted", "expense_id", id)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/expense-ledger/internal"
	"github.com/frahmantamala/expense-ledger/internal/card"
	cardRepo "github.com/frahmantamala/expense-ledger/internal/card/postgres"
	"github.com/frahmantamala/expense-ledger/internal/category"
	categoryRepo "github.com/frahmantamala/expense-ledger/internal/category/postgres"
	"github.com/frahmantamala/expense-ledger/internal/core/events"
	"github.com/frahmantamala/expense-ledger/internal/establishment"
	establishmentRepo "github.com/frahmantamala/expense-ledger/internal/establishment/postgres"
	"github.com/frahmantamala/expense-ledger/internal/expense"
	expenseRepo "github.com/frahmantamala/expense-ledger/internal/expense/postgres"
	"github.com/frahmantamala/expense-ledger/internal/installment"
	installmentRepo "github.com/frahmantamala/expense-ledger/internal/installment/postgres"
	"github.com/frahmantamala/expense-ledger/internal/spendinglimit"
	limitRepo "github.com/frahmantamala/expense-ledger/internal/spendinglimit/postgres"
	"github.com/frahmantamala/expense-ledger/internal/statement"
	statementSource "github.com/frahmantamala/expense-ledger/internal/statement/postgres"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ledger holds every service of the application on one database.
type ledger struct {
	bus           *events.EventBus
	category      *category.Service
	card          *card.Service
	establishment *establishment.Service
	installment   *installment.Service
	expense       *expense.Service
	limit         *spendinglimit.Service
	statement     *statement.Service
}

func openGorm(db *sqlx.DB) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}
	return gdb, nil
}

func newLedger(cfg *internal.Config, db *gorm.DB, logger *slog.Logger) *ledger {
	billing := cfg.Billing.WithDefaults()
	bus := events.NewEventBus(logger)

	categoryService := category.NewService(categoryRepo.NewCategoryRepository(db), logger)
	cardService := card.NewService(cardRepo.NewCardRepository(db), logger)
	establishmentService := establishment.NewService(establishmentRepo.NewEstablishmentRepository(db), categoryService, logger)
	installmentService := installment.NewService(installmentRepo.NewInstallmentRepository(db), bus, logger)
	generator := installment.NewGenerator(installment.NewSchedule(billing.DueDay))
	expenseService := expense.NewService(
		expenseRepo.NewExpenseRepository(db),
		cardService,
		establishmentService,
		installmentService,
		generator,
		bus,
		logger,
	)
	limitService := spendinglimit.NewService(limitRepo.NewLimitRepository(db), categoryService, billing, logger)
	statementService := statement.NewService(statementSource.NewStatementSource(db), billing, logger)

	statement.NewLimitWatcher(statementService, logger).Register(bus)
	subscribeInstallmentAudit(bus, logger)

	return &ledger{
		bus:           bus,
		category:      categoryService,
		card:          cardService,
		establishment: establishmentService,
		installment:   installmentService,
		expense:       expenseService,
		limit:         limitService,
		statement:     statementService,
	}
}

// subscribeInstallmentAudit logs every change of an installment's paid flag.
func subscribeInstallmentAudit(bus *events.EventBus, logger *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.InstallmentStatusEvent)
		if !ok {
			return fmt.Errorf("unexpected event payload %T", event)
		}
		logger.Info("installment status changed",
			"event_id", e.EventID(),
			"event_type", e.EventType(),
			"installment_id", e.InstallmentID,
			"expense_id", e.ExpenseID,
			"installment_number", e.Number,
			"paid_date", e.PaidDate)
		return nil
	}
	bus.Subscribe(events.EventTypeInstallmentPaid, audit)
	bus.Subscribe(events.EventTypeInstallmentUnpaid, audit)
}

package statement_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/expense-ledger/internal"
	expenseDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/expense"
	installmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/installment"
	"github.com/frahmantamala/expense-ledger/internal/core/datamodel/spendinglimit"
	"github.com/frahmantamala/expense-ledger/internal/core/events"
	"github.com/frahmantamala/expense-ledger/internal/statement"
	"github.com/frahmantamala/expense-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("LimitWatcher", func() {
	var (
		source  *MockSource
		watcher *statement.LimitWatcher
		logs    *bytes.Buffer
	)

	BeforeEach(func() {
		source = &MockSource{
			expenses: []*expenseDatamodel.Expense{directExpense(1, date(2025, 3, 5), "150.00", supermarket)},
			installments: []*installmentDatamodel.Installment{
				installmentOf(10, 2, 1, 2, date(2025, 4, 15), "60.00", pharmacy),
			},
			limits: []*spendinglimit.MonthlySpendingLimit{
				{Category: "supermarket", Year: 2025, Month: 3, Amount: amount("100.00"), IsActive: true},
				{Category: "pharmacy", Year: 2025, Month: 4, Amount: amount("100.00"), IsActive: true},
			},
		}
		quiet := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		logs = &bytes.Buffer{}
		service := statement.NewService(source, internal.BillingConfig{}, quiet)
		watcher = statement.NewLimitWatcher(service, slog.New(slog.NewTextHandler(logs, nil)))
	})

	It("should collect over-limit categories of the given months", func() {
		alerts, err := watcher.Check(context.Background(), []time.Time{date(2025, 3, 1), date(2025, 4, 1)})

		Expect(err).NotTo(HaveOccurred())
		Expect(alerts).To(HaveLen(1))
		Expect(alerts[0].Category).To(Equal("supermarket"))
		Expect(alerts[0].Month).To(Equal(3))
		Expect(alerts[0].TotalSpent.StringFixed(2)).To(Equal("150.00"))
	})

	It("should skip months outside the statement range", func() {
		alerts, err := watcher.Check(context.Background(), []time.Time{date(1990, 3, 1), date(2025, 3, 1), date(2101, 1, 1)})

		Expect(err).NotTo(HaveOccurred())
		Expect(alerts).To(HaveLen(1))
		Expect(alerts[0].Year).To(Equal(2025))
	})

	It("should still fail when a statement cannot be read", func() {
		source.failError = errors.New("connection refused")

		alerts, err := watcher.Check(context.Background(), []time.Time{date(2025, 3, 1)})
		Expect(err).To(MatchError(ContainSubstring("connection refused")))
		Expect(alerts).To(BeNil())
	})

	It("should accept an expense dated before the statement range", func() {
		event := events.NewExpenseCreatedEvent(3, decimal.RequireFromString("10.00"), "pix", date(1990, 6, 1), nil)

		Expect(watcher.HandleExpenseCreated(context.Background(), event)).To(Succeed())
		Expect(logs.String()).NotTo(ContainSubstring("spending limit exceeded"))
	})

	It("should log a warning when an expense pushes a category over its limit", func() {
		event := events.NewExpenseCreatedEvent(1, decimal.RequireFromString("150.00"), "pix", date(2025, 3, 5), nil)

		Expect(watcher.HandleExpenseCreated(context.Background(), event)).To(Succeed())
		Expect(logs.String()).To(ContainSubstring("spending limit exceeded"))
		Expect(logs.String()).To(ContainSubstring("category=supermarket"))
	})

	It("should stay quiet when every touched month is within limits", func() {
		event := events.NewExpenseCreatedEvent(2, decimal.RequireFromString("60.00"), "credit_card", date(2025, 3, 20), []time.Time{date(2025, 4, 15)})

		Expect(watcher.HandleExpenseCreated(context.Background(), event)).To(Succeed())
		Expect(logs.String()).NotTo(ContainSubstring("spending limit exceeded"))
	})

	It("should run when subscribed to the bus", func() {
		bus := events.NewEventBus(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
		watcher.Register(bus)

		event := events.NewExpenseCreatedEvent(1, decimal.RequireFromString("150.00"), "pix", date(2025, 3, 5), nil)
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
		Expect(logs.String()).To(ContainSubstring("spending limit exceeded"))
	})
})

var _ = Describe("Statement rendering and HTTP", func() {
	var service *statement.Service

	BeforeEach(func() {
		source := &MockSource{
			expenses:     []*expenseDatamodel.Expense{directExpense(1, date(2025, 3, 5), "50.00", pharmacy)},
			installments: []*installmentDatamodel.Installment{installmentOf(10, 2, 3, 3, date(2025, 3, 15), "33.34", supermarket)},
			limits: []*spendinglimit.MonthlySpendingLimit{
				{Category: "supermarket", Year: 2025, Month: 3, Amount: amount("200.00"), IsActive: true},
			},
		}
		service = statement.NewService(source, internal.BillingConfig{}, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	It("should render every category with its transactions", func() {
		st, err := service.BuildStatement(context.Background(), 2025, 3)
		Expect(err).NotTo(HaveOccurred())

		var out bytes.Buffer
		Expect(statement.Render(&out, st)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("March 2025"))
		Expect(out.String()).To(ContainSubstring("pharmacy"))
		Expect(out.String()).To(ContainSubstring("166.66"))
		Expect(out.String()).To(ContainSubstring("3/3"))
		Expect(out.String()).To(ContainSubstring("Nubank *1234"))
		Expect(out.String()).To(ContainSubstring("83.34"))
	})

	Describe("GET /statements/{year}/{month}", func() {
		var router *chi.Mux

		BeforeEach(func() {
			handler := statement.NewHandler(&transport.BaseHandler{Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))}, service)
			router = chi.NewRouter()
			router.Get("/statements/{year}/{month}", handler.GetStatement)
		})

		It("should return the statement", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/statements/2025/3", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"total_expenses":"83.34"`))
			Expect(w.Body.String()).To(ContainSubstring(`"category":"supermarket"`))
			Expect(w.Body.String()).To(ContainSubstring(`"card":{"id":1,"name":"Nubank","last_four_digits":"1234"}`))
		})

		It("should return 400 for an invalid month", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/statements/2025/13", nil))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("INVALID_PERIOD"))
		})

		It("should return 400 for a non numeric year", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/statements/abc/3", nil))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})

package installment_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/frahmantamala/expense-ledger/internal"
	installmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/installment"
	"github.com/frahmantamala/expense-ledger/internal/core/events"
	"github.com/frahmantamala/expense-ledger/internal/installment"
	"github.com/frahmantamala/expense-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

// MockRepository implements installment.RepositoryAPI for testing
type MockRepository struct {
	items      map[int64]*installmentDatamodel.Installment
	updates    int
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{items: make(map[int64]*installmentDatamodel.Installment)}
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*installmentDatamodel.Installment, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (m *MockRepository) ListByExpense(ctx context.Context, expenseID int64) ([]*installmentDatamodel.Installment, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*installmentDatamodel.Installment
	for n := 1; n <= len(m.items); n++ {
		for _, item := range m.items {
			if item.ExpenseID == expenseID && item.Number == n {
				result = append(result, item)
			}
		}
	}
	return result, nil
}

func (m *MockRepository) UpdatePaid(ctx context.Context, id int64, isPaid bool, paidDate *time.Time) error {
	if m.shouldFail {
		return m.failError
	}
	m.updates++
	if item, ok := m.items[id]; ok {
		item.IsPaid = isPaid
		item.PaidDate = paidDate
	}
	return nil
}

// RecordingPublisher captures published events
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *RecordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var types []string
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

var _ = Describe("Installment Service", func() {
	var (
		ctx       context.Context
		repo      *MockRepository
		publisher *RecordingPublisher
		service   *installment.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		publisher = &RecordingPublisher{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = installment.NewService(repo, publisher, slogger)

		for n := 1; n <= 2; n++ {
			repo.items[int64(n)] = &installmentDatamodel.Installment{
				ID:                int64(n),
				ExpenseID:         10,
				CardID:            7,
				Number:            n,
				TotalInstallments: 2,
				DueDate:           date(2025, time.Month(3+n), 15),
				Amount:            decimal.RequireFromString("50.00"),
			}
		}
	})

	Describe("MarkPaid", func() {
		It("should flag the installment and publish an event", func() {
			paid, err := service.MarkPaid(ctx, 1, date(2025, 4, 10))

			Expect(err).NotTo(HaveOccurred())
			Expect(paid.IsPaid).To(BeTrue())
			Expect(*paid.PaidDate).To(Equal(date(2025, 4, 10)))
			Expect(repo.items[1].IsPaid).To(BeTrue())
			Expect(publisher.Types()).To(Equal([]string{events.EventTypeInstallmentPaid}))
		})

		It("should be idempotent", func() {
			_, err := service.MarkPaid(ctx, 1, date(2025, 4, 10))
			Expect(err).NotTo(HaveOccurred())

			again, err := service.MarkPaid(ctx, 1, date(2025, 4, 20))
			Expect(err).NotTo(HaveOccurred())
			Expect(*again.PaidDate).To(Equal(date(2025, 4, 10)))
			Expect(repo.updates).To(Equal(1))
			Expect(publisher.Types()).To(HaveLen(1))
		})

		It("should return not found for an unknown installment", func() {
			_, err := service.MarkPaid(ctx, 99, date(2025, 4, 10))
			Expect(errors.Is(err, internal.ErrInstallmentNotFound)).To(BeTrue())
		})

		It("should wrap storage failures", func() {
			repo.shouldFail = true
			repo.failError = errors.New("db down")

			_, err := service.MarkPaid(ctx, 1, date(2025, 4, 10))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("MarkUnpaid", func() {
		It("should clear the paid flag", func() {
			_, err := service.MarkPaid(ctx, 2, date(2025, 5, 1))
			Expect(err).NotTo(HaveOccurred())

			unpaid, err := service.MarkUnpaid(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(unpaid.IsPaid).To(BeFalse())
			Expect(unpaid.PaidDate).To(BeNil())
			Expect(publisher.Types()).To(Equal([]string{events.EventTypeInstallmentPaid, events.EventTypeInstallmentUnpaid}))
		})

		It("should leave an unpaid installment untouched", func() {
			_, err := service.MarkUnpaid(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.updates).To(Equal(0))
			Expect(publisher.Types()).To(BeEmpty())
		})
	})

	Describe("ListByExpense", func() {
		It("should return installments in order", func() {
			items, err := service.ListByExpense(ctx, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(2))
			Expect(items[0].Label()).To(Equal("1/2"))
			Expect(items[1].Label()).To(Equal("2/2"))
		})
	})

	Describe("Handler", func() {
		var router *chi.Mux

		BeforeEach(func() {
			slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			handler := installment.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
			router = chi.NewRouter()
			router.Patch("/installments/{id}/pay", handler.MarkPaid)
			router.Patch("/installments/{id}/unpay", handler.MarkUnpaid)
		})

		It("should pay with an explicit date", func() {
			req := httptest.NewRequest(http.MethodPatch, "/installments/1/pay", strings.NewReader(`{"paid_date":"2025-04-10"}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"is_paid":true`))
			Expect(*repo.items[1].PaidDate).To(Equal(date(2025, 4, 10)))
		})

		It("should pay without a body", func() {
			req := httptest.NewRequest(http.MethodPatch, "/installments/1/pay", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(repo.items[1].IsPaid).To(BeTrue())
		})

		It("should reject a malformed paid date", func() {
			req := httptest.NewRequest(http.MethodPatch, "/installments/1/pay", strings.NewReader(`{"paid_date":"10/04/2025"}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("INVALID_DATE"))
		})

		It("should return 404 for an unknown installment", func() {
			req := httptest.NewRequest(http.MethodPatch, "/installments/404/unpay", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("INSTALLMENT_NOT_FOUND"))
		})
	})
})

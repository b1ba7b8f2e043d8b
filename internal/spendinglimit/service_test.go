package spendinglimit_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/expense-ledger/internal"
	limitDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/spendinglimit"
	"github.com/frahmantamala/expense-ledger/internal/spendinglimit"
	limitPostgres "github.com/frahmantamala/expense-ledger/internal/spendinglimit/postgres"
	"github.com/frahmantamala/expense-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type StaticCategories map[string]bool

func (s StaticCategories) IsValidCategory(_ context.Context, name string) bool {
	return s[name]
}

var _ = Describe("Spending Limit Service", func() {
	var (
		ctx     context.Context
		service *spendinglimit.Service
		router  *chi.Mux
	)

	march := func(cat, amount string) spendinglimit.CreateLimitDTO {
		return spendinglimit.CreateLimitDTO{
			Category: cat,
			Month:    3,
			Year:     2025,
			Amount:   decimal.RequireFromString(amount),
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&limitDatamodel.MonthlySpendingLimit{})).To(Succeed())

		categories := StaticCategories{"supermarket": true, "pharmacy": true}
		service = spendinglimit.NewService(limitPostgres.NewLimitRepository(db), categories, internal.BillingConfig{}, slogger)

		handler := spendinglimit.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
		router = chi.NewRouter()
		router.Post("/limits", handler.CreateLimit)
		router.Get("/limits", handler.ListLimits)
		router.Patch("/limits/{id}", handler.UpdateLimit)
		router.Delete("/limits/{id}", handler.DeactivateLimit)
	})

	Describe("CreateLimit", func() {
		It("should create a limit", func() {
			created, err := service.CreateLimit(ctx, march("Supermarket", "500.00"))

			Expect(err).NotTo(HaveOccurred())
			Expect(created.Category).To(Equal("supermarket"))
			Expect(created.IsActive).To(BeTrue())
			Expect(created.Amount.StringFixed(2)).To(Equal("500.00"))
		})

		It("should allow a zero limit", func() {
			_, err := service.CreateLimit(ctx, march("pharmacy", "0"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject a duplicate key", func() {
			_, err := service.CreateLimit(ctx, march("supermarket", "500.00"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateLimit(ctx, march("supermarket", "800.00"))
			Expect(errors.Is(err, internal.ErrLimitExists)).To(BeTrue())
		})

		It("should reactivate an inactive limit", func() {
			created, err := service.CreateLimit(ctx, march("supermarket", "500.00"))
			Expect(err).NotTo(HaveOccurred())
			_, err = service.DeactivateLimit(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())

			again, err := service.CreateLimit(ctx, march("supermarket", "650.00"))
			Expect(err).NotTo(HaveOccurred())
			Expect(again.ID).To(Equal(created.ID))
			Expect(again.IsActive).To(BeTrue())
			Expect(again.Amount.StringFixed(2)).To(Equal("650.00"))
		})

		It("should reject a negative amount", func() {
			_, err := service.CreateLimit(ctx, march("supermarket", "-1"))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject an invalid period", func() {
			dto := march("supermarket", "10")
			dto.Month = 13

			_, err := service.CreateLimit(ctx, dto)
			Expect(errors.Is(err, internal.ErrInvalidPeriod)).To(BeTrue())
		})

		It("should reject an unknown category", func() {
			_, err := service.CreateLimit(ctx, march("travel", "10"))
			Expect(errors.Is(err, internal.ErrInvalidCategory)).To(BeTrue())
		})
	})

	Describe("UpdateLimit", func() {
		It("should change the amount", func() {
			created, err := service.CreateLimit(ctx, march("supermarket", "500.00"))
			Expect(err).NotTo(HaveOccurred())

			amount := decimal.RequireFromString("420.5")
			updated, err := service.UpdateLimit(ctx, created.ID, spendinglimit.UpdateLimitDTO{Amount: &amount})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Amount.StringFixed(2)).To(Equal("420.50"))
			Expect(updated.IsActive).To(BeTrue())
		})

		It("should reject an empty update", func() {
			created, err := service.CreateLimit(ctx, march("supermarket", "500.00"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.UpdateLimit(ctx, created.ID, spendinglimit.UpdateLimitDTO{})
			Expect(err).To(HaveOccurred())
		})

		It("should return not found for an unknown limit", func() {
			_, err := service.DeactivateLimit(ctx, 404)
			Expect(errors.Is(err, internal.ErrLimitNotFound)).To(BeTrue())
		})
	})

	Describe("HTTP", func() {
		serve := func(method, path, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(method, path, strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("should return 409 on a duplicate limit", func() {
			body := `{"category":"supermarket","month":3,"year":2025,"amount":"500.00"}`
			Expect(serve(http.MethodPost, "/limits", body).Code).To(Equal(http.StatusCreated))

			w := serve(http.MethodPost, "/limits", body)
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(w.Body.String()).To(ContainSubstring("LIMIT_ALREADY_EXISTS"))
		})

		It("should list limits of a month including deactivated ones", func() {
			Expect(serve(http.MethodPost, "/limits", `{"category":"supermarket","month":3,"year":2025,"amount":500}`).Code).To(Equal(http.StatusCreated))
			Expect(serve(http.MethodPost, "/limits", `{"category":"pharmacy","month":3,"year":2025,"amount":100}`).Code).To(Equal(http.StatusCreated))
			Expect(serve(http.MethodPost, "/limits", `{"category":"pharmacy","month":4,"year":2025,"amount":100}`).Code).To(Equal(http.StatusCreated))
			Expect(serve(http.MethodDelete, "/limits/1", "").Code).To(Equal(http.StatusOK))

			w := serve(http.MethodGet, "/limits?year=2025&month=3", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp spendinglimit.LimitsResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Limits).To(HaveLen(2))
			Expect(resp.Limits[0].Category).To(Equal("pharmacy"))
			Expect(resp.Limits[1].IsActive).To(BeFalse())
		})

		It("should return 400 for a malformed month", func() {
			Expect(serve(http.MethodGet, "/limits?year=2025&month=march", "").Code).To(Equal(http.StatusBadRequest))
		})
	})
})

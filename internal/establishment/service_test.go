package establishment_test

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
	establishmentDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/establishment"
	"github.com/frahmantamala/expense-ledger/internal/establishment"
	establishmentPostgres "github.com/frahmantamala/expense-ledger/internal/establishment/postgres"
	"github.com/frahmantamala/expense-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StaticCategories accepts a fixed set of category names
type StaticCategories map[string]bool

func (s StaticCategories) IsValidCategory(_ context.Context, name string) bool {
	return s[name]
}

var _ = Describe("Establishment Service", func() {
	var (
		ctx     context.Context
		service *establishment.Service
		router  *chi.Mux
	)

	BeforeEach(func() {
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&establishmentDatamodel.Establishment{})).To(Succeed())

		categories := StaticCategories{"supermarket": true, "pharmacy": true, "restaurant": true}
		service = establishment.NewService(establishmentPostgres.NewEstablishmentRepository(db), categories, slogger)

		handler := establishment.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
		router = chi.NewRouter()
		router.Post("/establishments", handler.CreateEstablishment)
		router.Get("/establishments", handler.ListEstablishments)
		router.Get("/establishments/{id}", handler.GetEstablishment)
		router.Patch("/establishments/{id}/category", handler.UpdateCategory)
	})

	Describe("CreateEstablishment", func() {
		It("should normalize the category", func() {
			created, err := service.CreateEstablishment(ctx, establishment.CreateEstablishmentDTO{
				Name:     " Drogasil ",
				Category: "Pharmacy",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Name).To(Equal("Drogasil"))
			Expect(created.Category).To(Equal("pharmacy"))
		})

		It("should reject an unknown category", func() {
			_, err := service.CreateEstablishment(ctx, establishment.CreateEstablishmentDTO{
				Name:     "Cinema",
				Category: "entertainment",
			})

			Expect(errors.Is(err, internal.ErrInvalidCategory)).To(BeTrue())
		})

		It("should require a name", func() {
			_, err := service.CreateEstablishment(ctx, establishment.CreateEstablishmentDTO{Category: "pharmacy"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("UpdateCategory", func() {
		var shop *establishment.Establishment

		BeforeEach(func() {
			var err error
			shop, err = service.CreateEstablishment(ctx, establishment.CreateEstablishmentDTO{Name: "Padaria", Category: "supermarket"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should move the establishment to another category", func() {
			updated, err := service.UpdateCategory(ctx, shop.ID, establishment.UpdateCategoryDTO{Category: "restaurant"})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Category).To(Equal("restaurant"))

			fetched, err := service.GetEstablishment(ctx, shop.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.Category).To(Equal("restaurant"))
		})

		It("should return not found for an unknown establishment", func() {
			_, err := service.UpdateCategory(ctx, 404, establishment.UpdateCategoryDTO{Category: "restaurant"})
			Expect(errors.Is(err, internal.ErrEstablishmentNotFound)).To(BeTrue())
		})

		It("should reject an unknown category", func() {
			_, err := service.UpdateCategory(ctx, shop.ID, establishment.UpdateCategoryDTO{Category: "travel"})
			Expect(errors.Is(err, internal.ErrInvalidCategory)).To(BeTrue())
		})
	})

	Describe("HTTP", func() {
		serve := func(method, path, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(method, path, strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("should create, reattribute and list establishments", func() {
			Expect(serve(http.MethodPost, "/establishments", `{"name":"Mercado","category":"supermarket"}`).Code).To(Equal(http.StatusCreated))

			w := serve(http.MethodPatch, "/establishments/1/category", `{"category":"restaurant"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			w = serve(http.MethodGet, "/establishments", "")
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp establishment.EstablishmentsResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Establishments).To(HaveLen(1))
			Expect(resp.Establishments[0].Category).To(Equal("restaurant"))
		})

		It("should return 400 for an unknown category", func() {
			w := serve(http.MethodPost, "/establishments", `{"name":"Cinema","category":"movies"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("INVALID_CATEGORY"))
		})

		It("should return 404 for an unknown establishment", func() {
			Expect(serve(http.MethodGet, "/establishments/9", "").Code).To(Equal(http.StatusNotFound))
		})
	})
})

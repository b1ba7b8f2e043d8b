package category_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/expense-ledger/internal/category"
	categoryPostgres "github.com/frahmantamala/expense-ledger/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/category"
	"github.com/frahmantamala/expense-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		ctx     context.Context
		service *category.Service
		router  chi.Router
	)

	BeforeEach(func() {
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&categoryDatamodel.SpendingCategory{})).To(Succeed())

		service = category.NewService(categoryPostgres.NewCategoryRepository(db), slogger)
		handler := category.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/categories", handler.GetCategories)
		router.Post("/categories", handler.CreateCategory)
		router.Delete("/categories/{name}", handler.DeactivateCategory)

		for _, dto := range []category.CreateCategoryDTO{
			{Name: "supermarket", Description: "Groceries and household"},
			{Name: "pharmacy", Description: "Medicine and health"},
			{Name: "travel"},
		} {
			_, err := service.CreateCategory(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(service.DeactivateCategory(ctx, "travel")).To(Succeed())
	})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should list active categories ordered by name", func() {
		w := serve(http.MethodGet, "/categories", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response category.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(HaveLen(2))
		Expect(response.Categories[0].Name).To(Equal("pharmacy"))
		Expect(response.Categories[0].Description).To(Equal("Medicine and health"))
		Expect(response.Categories[1].Name).To(Equal("supermarket"))
		Expect(response.Categories[1].IsActive).To(BeTrue())
	})

	It("should create a category through POST /categories", func() {
		w := serve(http.MethodPost, "/categories", `{"name":"Restaurant","description":"Eating out"}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).To(ContainSubstring(`"name":"restaurant"`))
		Expect(service.IsValidCategory(ctx, "restaurant")).To(BeTrue())
	})

	It("should answer 409 for a duplicate category", func() {
		w := serve(http.MethodPost, "/categories", `{"name":"supermarket"}`)
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("should answer 400 for a malformed body", func() {
		w := serve(http.MethodPost, "/categories", `{"name":`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should bring back a deactivated category on POST", func() {
		w := serve(http.MethodPost, "/categories", `{"name":"travel","description":"Trips"}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(service.IsValidCategory(ctx, "travel")).To(BeTrue())
	})

	It("should deactivate a category through DELETE /categories/{name}", func() {
		w := serve(http.MethodDelete, "/categories/pharmacy", "")

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(service.IsValidCategory(ctx, "pharmacy")).To(BeFalse())

		list := serve(http.MethodGet, "/categories", "")
		Expect(list.Body.String()).NotTo(ContainSubstring("pharmacy"))
	})

	It("should answer 404 when deactivating an unknown category", func() {
		w := serve(http.MethodDelete, "/categories/unknown", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})

package card_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/expense-ledger/internal/card"
	cardPostgres "github.com/frahmantamala/expense-ledger/internal/card/postgres"
	cardDatamodel "github.com/frahmantamala/expense-ledger/internal/core/datamodel/card"
	"github.com/frahmantamala/expense-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Card Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&cardDatamodel.Card{})).To(Succeed())

		service := card.NewService(cardPostgres.NewCardRepository(db), slogger)
		handler := card.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/cards", handler.CreateCard)
		router.Get("/cards", handler.ListCards)
		router.Get("/cards/{id}", handler.GetCard)
		router.Patch("/cards/{id}/closing-day", handler.UpdateClosingDay)
	})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should create and fetch a card", func() {
		w := serve(http.MethodPost, "/cards", `{"name":"Nubank","last_four_digits":"1234","brand":"Mastercard","closing_day":15}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created card.Card
		Expect(json.Unmarshal(w.Body.Bytes(), &created)).To(Succeed())
		Expect(created.ID).To(BeNumerically(">", 0))

		w = serve(http.MethodGet, "/cards/1", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var fetched card.Card
		Expect(json.Unmarshal(w.Body.Bytes(), &fetched)).To(Succeed())
		Expect(fetched.Name).To(Equal("Nubank"))
		Expect(*fetched.ClosingDay).To(Equal(15))
	})

	It("should return 400 for an invalid closing day", func() {
		w := serve(http.MethodPost, "/cards", `{"name":"Nubank","last_four_digits":"1234","closing_day":0}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_CLOSING_DAY"))
	})

	It("should return 404 for an unknown card", func() {
		w := serve(http.MethodGet, "/cards/77", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("CARD_NOT_FOUND"))
	})

	It("should return 400 for a malformed id", func() {
		w := serve(http.MethodGet, "/cards/abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should update the closing day", func() {
		Expect(serve(http.MethodPost, "/cards", `{"name":"Inter","last_four_digits":"4321"}`).Code).To(Equal(http.StatusCreated))

		w := serve(http.MethodPatch, "/cards/1/closing-day", `{"closing_day":10}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var updated card.Card
		Expect(json.Unmarshal(w.Body.Bytes(), &updated)).To(Succeed())
		Expect(*updated.ClosingDay).To(Equal(10))
	})

	It("should list cards", func() {
		Expect(serve(http.MethodPost, "/cards", `{"name":"Nubank","last_four_digits":"1234"}`).Code).To(Equal(http.StatusCreated))
		Expect(serve(http.MethodPost, "/cards", `{"name":"Inter","last_four_digits":"4321"}`).Code).To(Equal(http.StatusCreated))

		w := serve(http.MethodGet, "/cards", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp card.CardsResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Cards).To(HaveLen(2))
		Expect(resp.Cards[0].Name).To(Equal("Inter"))
	})
})

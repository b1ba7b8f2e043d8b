package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/expense-ledger/internal/card"
	"github.com/frahmantamala/expense-ledger/internal/category"
	"github.com/frahmantamala/expense-ledger/internal/establishment"
	"github.com/frahmantamala/expense-ledger/internal/expense"
	"github.com/frahmantamala/expense-ledger/internal/installment"
	"github.com/frahmantamala/expense-ledger/internal/spendinglimit"
	"github.com/frahmantamala/expense-ledger/internal/statement"
	"github.com/frahmantamala/expense-ledger/internal/transport/middleware"
	"github.com/frahmantamala/expense-ledger/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups everything mounted under /api/v1. A nil handler leaves
// its routes unmounted.
type Handlers struct {
	Health        *HealthHandler
	Category      *category.Handler
	Card          *card.Handler
	Establishment *establishment.Handler
	Expense       *expense.Handler
	Installment   *installment.Handler
	Limit         *spendinglimit.Handler
	Statement     *statement.Handler
}

type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	OpenAPI        *swagger.Document
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts RouterOptions, logger *slog.Logger) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.TraceIDHeader},
		ExposedHeaders: []string{middleware.TraceIDHeader},
		MaxAge:         300,
	}))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestTimeout(opts.RequestTimeout))

	if opts.OpenAPI != nil {
		router.Method(http.MethodGet, "/openapi.yml", opts.OpenAPI)
		router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))
	}

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.Check)
			r.Get("/ping", h.Health.Ping)
		}

		if h.Category != nil {
			r.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.GetCategories)
				cr.Post("/", h.Category.CreateCategory)
				cr.Delete("/{name}", h.Category.DeactivateCategory)
			})
		}

		if h.Card != nil {
			r.Route("/cards", func(cr chi.Router) {
				cr.Post("/", h.Card.CreateCard)
				cr.Get("/", h.Card.ListCards)
				cr.Get("/{id}", h.Card.GetCard)
				cr.Patch("/{id}/closing-day", h.Card.UpdateClosingDay)
			})
		}

		if h.Establishment != nil {
			r.Route("/establishments", func(er chi.Router) {
				er.Post("/", h.Establishment.CreateEstablishment)
				er.Get("/", h.Establishment.ListEstablishments)
				er.Get("/{id}", h.Establishment.GetEstablishment)
				er.Patch("/{id}/category", h.Establishment.UpdateCategory)
			})
		}

		if h.Expense != nil {
			r.Route("/expenses", func(er chi.Router) {
				er.Post("/", h.Expense.CreateExpense)
				er.Get("/{id}", h.Expense.GetExpense)
				er.Get("/{id}/installments", h.Expense.ListInstallments)
				er.Delete("/{id}", h.Expense.DeleteExpense)
			})
		}

		if h.Installment != nil {
			r.Route("/installments", func(ir chi.Router) {
				ir.Patch("/{id}/pay", h.Installment.MarkPaid)
				ir.Patch("/{id}/unpay", h.Installment.MarkUnpaid)
			})
		}

		if h.Limit != nil {
			r.Route("/limits", func(lr chi.Router) {
				lr.Post("/", h.Limit.CreateLimit)
				lr.Get("/", h.Limit.ListLimits)
				lr.Patch("/{id}", h.Limit.UpdateLimit)
				lr.Delete("/{id}", h.Limit.DeactivateLimit)
			})
		}

		if h.Statement != nil {
			r.Get("/statements/{year}/{month}", h.Statement.GetStatement)
		}
	})
}

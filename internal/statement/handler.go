package statement

import (
	"context"
	"net/http"

	"github.com/frahmantamala/expense-ledger/internal/transport"
)

type ServiceAPI interface {
	BuildStatement(ctx context.Context, year, month int) (*MonthlyStatement, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetStatement serves GET /statements/{year}/{month}.
func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	year, ok := h.ParseIntParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := h.ParseIntParam(w, r, "month")
	if !ok {
		return
	}

	st, err := h.Service.BuildStatement(r.Context(), year, month)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, st)
}

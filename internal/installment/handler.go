package installment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/frahmantamala/expense-ledger/internal/transport"
)

type ServiceAPI interface {
	MarkPaid(ctx context.Context, id int64, paidDate time.Time) (*Installment, error)
	MarkUnpaid(ctx context.Context, id int64) (*Installment, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	now     func() time.Time
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		now:         time.Now,
	}
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseIDParam(w, r, "id")
	if !ok {
		return
	}

	var dto MarkPaidDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && err != io.EOF {
		h.Logger.Error("MarkPaid: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	paidDate, appErr := dto.ParsePaidDate(h.now())
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	updated, err := h.Service.MarkPaid(r.Context(), id, paidDate)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) MarkUnpaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseIDParam(w, r, "id")
	if !ok {
		return
	}

	updated, err := h.Service.MarkUnpaid(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

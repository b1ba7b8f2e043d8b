package installment

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/expense-ledger/internal"
)

// MarkPaidDTO is the optional body of the pay endpoint. PaidDate defaults to
// today when omitted.
type MarkPaidDTO struct {
	PaidDate string `json:"paid_date,omitempty"`
}

func (dto MarkPaidDTO) ParsePaidDate(now time.Time) (time.Time, *errors.AppError) {
	raw := strings.TrimSpace(dto.PaidDate)
	if raw == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, errors.NewValidationFieldError("paid_date", "paid_date must be formatted as YYYY-MM-DD", errors.ErrCodeInvalidDate)
	}
	return parsed, nil
}

type InstallmentsResponse struct {
	Installments []*Installment `json:"installments"`
}

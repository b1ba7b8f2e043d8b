package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypePrecondition ErrorType = "PRECONDITION_FAILED"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDescription ErrorCode = "INVALID_DESCRIPTION"
	ErrCodeInvalidDate        ErrorCode = "INVALID_DATE"
	ErrCodeInvalidPeriod      ErrorCode = "INVALID_PERIOD"
	ErrCodeInvalidCount       ErrorCode = "INVALID_INSTALLMENT_COUNT"
	ErrCodeInvalidIndex       ErrorCode = "INVALID_INSTALLMENT_INDEX"
	ErrCodeInvalidClosingDay  ErrorCode = "INVALID_CLOSING_DAY"
	ErrCodeInvalidMethod      ErrorCode = "INVALID_PAYMENT_METHOD"
	ErrCodeInvalidCategory    ErrorCode = "INVALID_CATEGORY"

	ErrCodeCardRequired           ErrorCode = "CARD_REQUIRED"
	ErrCodeCardMissingClosingDay  ErrorCode = "CARD_MISSING_CLOSING_DAY"
	ErrCodeInstallmentsNotAllowed ErrorCode = "INSTALLMENTS_NOT_ALLOWED"

	ErrCodeCardNotFound          ErrorCode = "CARD_NOT_FOUND"
	ErrCodeExpenseNotFound       ErrorCode = "EXPENSE_NOT_FOUND"
	ErrCodeInstallmentNotFound   ErrorCode = "INSTALLMENT_NOT_FOUND"
	ErrCodeEstablishmentNotFound ErrorCode = "ESTABLISHMENT_NOT_FOUND"
	ErrCodeLimitNotFound         ErrorCode = "LIMIT_NOT_FOUND"
	ErrCodeCategoryNotFound      ErrorCode = "CATEGORY_NOT_FOUND"

	ErrCodeLimitExists    ErrorCode = "LIMIT_ALREADY_EXISTS"
	ErrCodeCategoryExists ErrorCode = "CATEGORY_ALREADY_EXISTS"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same code, so sentinel
// errors match their copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of e carrying cause; sentinels are never mutated.
func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage returns a copy of e with a more specific message.
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewPreconditionError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypePrecondition,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

var (
	ErrInvalidAmount           = NewValidationError("amount must be greater than zero", ErrCodeInvalidAmount)
	ErrInvalidPeriod           = NewValidationError("month must be 1-12 and year within the supported range", ErrCodeInvalidPeriod)
	ErrInvalidInstallmentCount = NewValidationError("installment count must be at least 1", ErrCodeInvalidCount)
	ErrInvalidInstallmentIndex = NewValidationError("installment index must not be negative", ErrCodeInvalidIndex)
	ErrInvalidClosingDay       = NewValidationError("closing day must be between 1 and 31", ErrCodeInvalidClosingDay)
	ErrInvalidPaymentMethod    = NewValidationError("unknown payment method", ErrCodeInvalidMethod)
	ErrInvalidCategory         = NewValidationError("category is not an active spending category", ErrCodeInvalidCategory)

	ErrCardRequired           = NewPreconditionError("a card is required for this payment method", ErrCodeCardRequired)
	ErrCardMissingClosingDay  = NewPreconditionError("card has no billing-cycle closing day configured", ErrCodeCardMissingClosingDay)
	ErrInstallmentsNotAllowed = NewPreconditionError("installments are only allowed for credit card purchases", ErrCodeInstallmentsNotAllowed)

	ErrCardNotFound          = NewNotFoundError("card not found", ErrCodeCardNotFound)
	ErrExpenseNotFound       = NewNotFoundError("expense not found", ErrCodeExpenseNotFound)
	ErrInstallmentNotFound   = NewNotFoundError("installment not found", ErrCodeInstallmentNotFound)
	ErrEstablishmentNotFound = NewNotFoundError("establishment not found", ErrCodeEstablishmentNotFound)
	ErrLimitNotFound         = NewNotFoundError("spending limit not found", ErrCodeLimitNotFound)
	ErrCategoryNotFound      = NewNotFoundError("spending category not found", ErrCodeCategoryNotFound)

	ErrLimitExists    = NewConflictError("a spending limit already exists for this category and month", ErrCodeLimitExists)
	ErrCategoryExists = NewConflictError("spending category already exists", ErrCodeCategoryExists)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidAmount     ErrorCode = "INVALID_AMOUNT"
	ErrCodePastDeadline      ErrorCode = "PAST_DEADLINE"
	ErrCodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusForbidden
	case ErrCodeInvalidStatus:
		return http.StatusConflict
	case ErrCodeInvalidAmount, ErrCodePastDeadline:
		return http.StatusBadRequest
	case ErrCodeInsufficientFunds:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки, либо ErrCodeInternal для посторонних ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// HTTPStatusOf возвращает HTTP статус для ошибки.
func HTTPStatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsUnauthorized(err error) bool {
	return CodeOf(err) == ErrCodeUnauthorized
}

func IsInvalidStatus(err error) bool {
	return CodeOf(err) == ErrCodeInvalidStatus
}

func IsInsufficientFunds(err error) bool {
	return CodeOf(err) == ErrCodeInsufficientFunds
}

var (
	ErrJobNotFound       = New(ErrCodeNotFound, "заказ не найден")
	ErrBidNotFound       = New(ErrCodeNotFound, "отклик не найден")
	ErrMilestoneNotFound = New(ErrCodeNotFound, "этап не найден")
	ErrDisputeNotFound   = New(ErrCodeNotFound, "спор не найден")
	ErrEscrowNotFound    = New(ErrCodeNotFound, "escrow не найден")
	ErrUnauthorized      = New(ErrCodeUnauthorized, "недостаточно прав")
	ErrInsufficientFunds = New(ErrCodeInsufficientFunds, "недостаточно средств")
)

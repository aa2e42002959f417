package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/billingcat/clients/dto"
	"github.com/billingcat/clients/service"
	"github.com/billingcat/clients/validation"
	"github.com/labstack/echo/v4"
)

type appError struct {
	Code   string           // stabiler, interner Fehlercode für Ops/Support
	Status int              // passender HTTP-Status
	Err    error            // ursprünglicher Fehler (wird nie an den Client gegeben)
	Public string           // sicherer Text für Nutzer (optional)
	Fields []dto.FieldError // abgelehnte Felder, falls vorhanden
}

func (e *appError) Error() string { return fmt.Sprintf("%s: %v", e.Code, e.Err) }
func (e *appError) Unwrap() error { return e.Err }

// ErrNotFound builds a 404 error.
func ErrNotFound(err error, public string) *appError {
	return &appError{Code: "NOT_FOUND", Status: http.StatusNotFound, Err: err, Public: public}
}

// ErrInvalid builds a 400 error with an optional list of rejected fields.
func ErrInvalid(err error, public string, fields ...dto.FieldError) *appError {
	return &appError{Code: "INVALID_INPUT", Status: http.StatusBadRequest, Err: err, Public: public, Fields: fields}
}

// ErrInternal builds a 500 error. The cause is only logged.
func ErrInternal(err error) *appError {
	return &appError{Code: "INTERNAL", Status: http.StatusInternalServerError, Err: err}
}

// toAppError maps any error returned by a handler to an appError. Domain
// error kinds are translated here and nowhere else.
func toAppError(err error) *appError {
	var ae *appError
	var he *echo.HTTPError
	var verrs validation.Errors
	var cerr *service.ContactError

	switch {
	case errors.As(err, &ae):
		return ae
	case errors.As(err, &verrs):
		return ErrInvalid(err, verrs.Error(), verrs...)
	case errors.Is(err, service.ErrValidationFailed):
		return ErrInvalid(err, err.Error())
	case errors.As(err, &cerr):
		field := dto.FieldError{Field: cerr.Field, Message: cerr.Reason}
		return ErrInvalid(err, field.String(), field)
	case errors.Is(err, service.ErrContactInvalid):
		return ErrInvalid(err, "contact not valid")
	case errors.Is(err, service.ErrClientNotFound):
		return ErrNotFound(err, "client not found")
	case errors.As(err, &he):
		// Nur 4xx-Mitteilungen an Nutzer durchlassen; 5xx maskieren
		public := ""
		if he.Code >= 400 && he.Code < 500 {
			public = fmt.Sprint(he.Message)
		}
		cause := he.Internal
		if cause == nil {
			cause = fmt.Errorf("%v", he.Message)
		}
		return &appError{
			Code:   httpStatusToCode(he.Code),
			Status: he.Code,
			Err:    cause,
			Public: public,
		}
	default:
		return ErrInternal(err)
	}
}

func userMessage(ae *appError) string {
	if ae.Public != "" {
		return ae.Public
	}
	switch ae.Code {
	case "INVALID_INPUT":
		return "The input is invalid."
	case "NOT_FOUND":
		return "The requested resource was not found."
	case "METHOD_NOT_ALLOWED":
		return "This HTTP method is not supported here."
	default:
		return "An internal error occurred. Please try again later."
	}
}

func httpStatusToCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_INPUT"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	default:
		if status >= 500 {
			return "INTERNAL"
		}
		return "ERROR"
	}
}

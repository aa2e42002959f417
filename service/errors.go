package service

import (
	"errors"
	"fmt"

	"github.com/billingcat/clients/model"
	"github.com/billingcat/clients/validation"
)

var (
	// ErrValidationFailed is returned for structurally or semantically
	// invalid input. The concrete error is a validation.Errors list.
	ErrValidationFailed = validation.ErrValidationFailed

	// ErrClientNotFound is returned when the referenced client does not exist.
	ErrClientNotFound = model.ErrClientNotFound

	// ErrContactInvalid is returned when a contact value does not fit its type.
	ErrContactInvalid = errors.New("contact not valid")
)

// ContactError describes why a contact was rejected.
type ContactError struct {
	Field  string
	Reason string
}

func (e *ContactError) Error() string {
	return fmt.Sprintf("%s: %s - %s", ErrContactInvalid, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrContactInvalid.
func (e *ContactError) Unwrap() error {
	return ErrContactInvalid
}

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClientNotFound wraps ErrNotFound for clients.
	ErrClientNotFound = fmt.Errorf("%w: client", ErrNotFound)

	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("already exists")

	// ErrClientNameTaken wraps ErrDuplicate for the client name index.
	ErrClientNameTaken = fmt.Errorf("%w: client name", ErrDuplicate)
)

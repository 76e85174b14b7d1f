package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories and use cases when a requested
// record does not exist. Handlers match it with errors.Is to produce a 404.
var ErrNotFound = errors.New("entity: not found")

// InvalidPayloadError is returned when a caller-supplied payload fails
// validation. It carries the offending field so handlers can report it.
type InvalidPayloadError struct {
	Field  string
	Reason string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid payload: %s: %s", e.Field, e.Reason)
}

package apperr

import (
	"errors"
	"strings"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates that a conditional update lost to another actor (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrExpired is returned when a broadcast is claimed after its window closed.
var ErrExpired = errors.New("expired")

// ErrForbidden is returned when the actor may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrProductUnavailable is returned when the catalog cannot price an item.
var ErrProductUnavailable = errors.New("product unavailable")

// ErrNoneAvailable signals that no delivery agent could be reserved.
var ErrNoneAvailable = errors.New("no delivery agent available")

// ErrStoreUnavailable marks failures of the durable store itself.
var ErrStoreUnavailable = errors.New("store unavailable")

// ProductUnavailableError lists the product ids the catalog could not resolve.
type ProductUnavailableError struct {
	IDs []string
}

func (e *ProductUnavailableError) Error() string {
	return "product unavailable: " + strings.Join(e.IDs, ",")
}

// Unwrap lets errors.Is match ErrProductUnavailable.
func (e *ProductUnavailableError) Unwrap() error { return ErrProductUnavailable }

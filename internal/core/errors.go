package core

import (
	"errors"
	"net/http"
)

// Error kinds shared by the catalog, search and order packages.
// Callers wrap them with field detail and match with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrSessionUnknown = errors.New("invalid session")
)

// HTTPStatus maps an error to the status code handlers answer with.
// An unknown session is a bad request, not a missing resource.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrSessionUnknown):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

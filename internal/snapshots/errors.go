package snapshots

import (
	"errors"
	"net/http"
)

// ErrInvalidBaseline rejects a malformed baseline query parameter. The
// snapshots domain is read-only, so this is its only caller-facing error.
var ErrInvalidBaseline = errors.New("invalid baseline date")

// MapHTTPStatus maps snapshot domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidBaseline) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package session

import "errors"

// Domain error taxonomy. Validation errors (invalid filter tokens, malformed
// time strings) are raised by the filter and timecode packages; these cover
// the service-level failures. ErrConflict rounds out the taxonomy for
// duplicate-action guards built on the same service (re-adding to a
// wishlist and the like).
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

package crookedfinger

import "github.com/crookedfinger/crookedfinger-go/api"

// Errors re-exported from api.
var (
	// ErrUnauthenticated is returned when no session is installed or the
	// backend rejects the current token.
	ErrUnauthenticated = api.ErrUnauthenticated

	// ErrNotFound is returned when a project or conversation does not exist.
	ErrNotFound = api.ErrNotFound

	// ErrUnavailable is returned when the backend cannot serve requests.
	ErrUnavailable = api.ErrUnavailable
)

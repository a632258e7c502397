package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated indicates the request had no valid session
	// token. Callers should prompt for a fresh login.
	ErrUnauthenticated = errors.New("api: authentication required")

	// ErrNotFound indicates the requested object does not exist or is
	// not visible to the current user.
	ErrNotFound = errors.New("api: not found")

	// ErrUnavailable indicates the backend could not serve the request.
	ErrUnavailable = errors.New("api: service unavailable")
)

// Error is a GraphQL-level failure reported by the backend. It unwraps
// to one of the package sentinels when the messages identify a known
// condition.
type Error struct {
	// Op is the operation that failed.
	Op string

	// Messages holds the raw error messages from the response.
	Messages []string

	sentinel error
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s: %s", e.Op, strings.Join(e.Messages, "; "))
}

func (e *Error) Unwrap() error { return e.sentinel }

// graphQLError classifies the errors array of a GraphQL response.
func graphQLError(op string, errs []gqlError) error {
	msgs := make([]string, 0, len(errs))
	for _, ge := range errs {
		msgs = append(msgs, ge.Message)
	}
	e := &Error{Op: op, Messages: msgs}

	lower := strings.ToLower(strings.Join(msgs, "; "))
	switch {
	case strings.Contains(lower, "authentication") || strings.Contains(lower, "authenticated"):
		e.sentinel = ErrUnauthenticated
	case strings.Contains(lower, "not found"):
		e.sentinel = ErrNotFound
	}
	return e
}

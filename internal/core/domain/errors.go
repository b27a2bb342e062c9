package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrNoSubject       = errors.New("no subject selected")
	ErrActionInFlight  = errors.New("action already in flight")

	// ErrEmptyFields is the local rejection of a form with required fields
	// empty after trimming. It is raised before any network call.
	ErrEmptyFields = errors.New("required fields empty")

	// ErrUnavailable marks transport-level failures: the upstream service
	// could not be reached at all, as opposed to rejecting the request.
	ErrUnavailable = errors.New("service unavailable")
)

// UpstreamError is an application-level rejection from a backend service: a
// non-success HTTP status with whatever message the service supplied.
// Message is surfaced to the operator verbatim.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Service, e.Status, e.Message)
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrAdoptionRequestNotFound = errors.New("adoption request not found")
	ErrPetNotFound             = errors.New("pet not found")
	ErrNoPetSelected           = errors.New("no pet selected")
	ErrUnauthenticated         = errors.New("unauthenticated")
	ErrForbidden               = errors.New("access forbidden")
	ErrRequestInFlight         = errors.New("a request is already in progress")
	ErrFormClosed              = errors.New("form already submitted")
	ErrUpstreamUnavailable     = errors.New("upstream service unavailable")
)

// RemoteError is a non-2xx answer from one of the backend services.
// Message carries the server-provided text when there was one.
type RemoteError struct {
	Operation string
	Status    int
	Message   string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: remote status %d", e.Operation, e.Status)
	}
	return fmt.Sprintf("%s: remote status %d: %s", e.Operation, e.Status, e.Message)
}

package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCollaboratorUnavailable marks a cache or store that could not be reached.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	// ErrCapabilityFailure marks a failed AI capability call (transport, HTTP status, breaker open).
	ErrCapabilityFailure = errors.New("ai capability failure")
	// ErrMalformedResponse marks an AI response that did not match the expected schema.
	ErrMalformedResponse = errors.New("ai capability returned malformed response")
)

// IsCapabilityError reports whether err came from the AI capability boundary.
func IsCapabilityError(err error) bool {
	return errors.Is(err, ErrCapabilityFailure) || errors.Is(err, ErrMalformedResponse)
}

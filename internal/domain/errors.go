package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the public API. Check with errors.Is.
var (
	// ErrPartialFailure is returned when a sweep finished walking every page
	// but at least one item mutation was rejected.
	ErrPartialFailure = errors.New("vaultsweep: one or more items failed")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("vaultsweep: invalid configuration")

	// ErrUnknownTool is returned when a tool name has no dispatch entry.
	ErrUnknownTool = errors.New("vaultsweep: unknown tool")
)

// AuthError reports that the service rejected the API token.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized (%d): %s", e.Status, e.Body)
}

// TransportError wraps network and timeout failures.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedResponseError reports a response that could not be used: an
// unexpected status on a list call, or a body that does not parse.
type UnexpectedResponseError struct {
	Status int
	Body   string
	Err    error
}

func (e *UnexpectedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response (%d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("unexpected response (%d): %s", e.Status, e.Body)
}

func (e *UnexpectedResponseError) Unwrap() error { return e.Err }

// MutationFailure is the service's rejection of a single item.
type MutationFailure struct {
	Status int
	Body   string
}

func (e *MutationFailure) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Body)
}

// PageFetchError reports which page could not be listed. Items on that page
// and every later page were not attempted.
type PageFetchError struct {
	Offset int
	Size   int
	Err    error
}

func (e *PageFetchError) Error() string {
	return fmt.Sprintf("fetch page offset=%d size=%d: %v", e.Offset, e.Size, e.Err)
}

func (e *PageFetchError) Unwrap() error { return e.Err }

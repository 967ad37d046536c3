// Package client talks to the movie API over HTTP and opens the CLI's local
// catalog cache.
//
// Error Handling
//
// Failures are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrConflict, ErrBadRequest.
package client

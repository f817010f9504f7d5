// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across client/checkout layers.
var (
	// ErrMissingIdentity indicates no device identity could be resolved.
	ErrMissingIdentity = errors.New("missing device identity")

	// ErrNetwork indicates a transport-level failure (offline, DNS, timeout).
	ErrNetwork = errors.New("network error")

	// ErrServerRejected indicates a non-2xx response from the store API.
	ErrServerRejected = errors.New("server rejected request")

	// ErrValidation indicates client-side input failure; never reaches the network.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// Rejection reports a non-2xx response, keeping the server's message verbatim
// when the body carried one.
type Rejection struct {
	Status  int
	Message string
}

func (r *Rejection) Error() string {
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("HTTP %d", r.Status)
}

// Unwrap makes errors.Is(err, ErrServerRejected) hold for rejections.
func (r *Rejection) Unwrap() error { return ErrServerRejected }

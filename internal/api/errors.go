// internal/api/errors.go
package api

import (
	"errors"
	"fmt"
)

// ErrAuthExpired signals that the bearer credential is no longer accepted
// (401/403 from the collaborator, or a locally detected expiry). It must be
// escalated to the auth layer, never retried here.
var ErrAuthExpired = errors.New("authentication expired")

// TransportError is a network-level failure: the request never reached the
// server, so no server-side state changed and no local state was touched.
type TransportError struct {
	Op  string // the operation that failed, e.g. "create schedule"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedError is a non-2xx response: the request reached the server and was
// refused (validation, missing entity, server fault). The affected local
// state is left unchanged by the caller.
type RejectedError struct {
	Op         string
	StatusCode int
	Body       string // response body, truncated, for diagnostics
}

func (e *RejectedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: rejected with status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: rejected with status %d: %s", e.Op, e.StatusCode, e.Body)
}

package smartrecruiters

import (
	"errors"
	"fmt"
)

// ErrNotFound marks upstream 404s that are a normal outcome for the caller
// (job removed, no active publications). Never treated as a failure.
var ErrNotFound = errors.New("not found")

// ErrCredentialsMissing is returned before any network call when the client
// id/secret pair is not configured.
var ErrCredentialsMissing = errors.New("smartrecruiters credentials not configured")

// AuthError is a non-2xx from the identity (token) endpoint.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("smartrecruiters token request failed: status %d", e.StatusCode)
}

// UpstreamError is a non-2xx (other than the documented 404 cases) or a
// malformed response from a data endpoint. Body is truncated, for logs only.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("smartrecruiters %s: status %d", e.Op, e.StatusCode)
}

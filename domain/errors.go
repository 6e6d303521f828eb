package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("insufficient role permissions")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Report errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPartialUpdate     = errors.New("paired records partially updated")
	ErrDuplicatePending  = errors.New("a pending report already exists for this user")
	ErrGeocodingFailed   = errors.New("geocoding failed")
	ErrRefreshInFlight   = errors.New("dashboard refresh already in flight")
)

// HTTPError reports a non-2xx response from the REST data store.
type HTTPError struct {
	StatusCode int
	Method     string
	Endpoint   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("store returned %d for %s %s", e.StatusCode, e.Method, e.Endpoint)
}

// IsAuthReject reports whether the store rejected the request outright,
// which must tear down the local session.
func (e *HTTPError) IsAuthReject() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

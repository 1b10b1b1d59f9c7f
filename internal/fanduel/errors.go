package fanduel

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthReason identifies why establishing a session failed.
type AuthReason string

const (
	ReasonMissingSessionCookie   AuthReason = "missing session cookie"
	ReasonInvalidCredentials     AuthReason = "invalid credentials"
	ReasonIdentityMarkupNotFound AuthReason = "identity markup not found"
	ReasonIdentityFieldNotFound  AuthReason = "identity field not found"
)

// AuthError is returned when a session could not be established.
type AuthError struct {
	Reason AuthReason
	// Field is set for ReasonIdentityFieldNotFound.
	Field string
	Cause error
}

func (e *AuthError) Error() string {
	msg := fmt.Sprintf("fanduel: auth: %s", e.Reason)
	if e.Field != "" {
		msg += fmt.Sprintf(" (%s)", e.Field)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// HttpError is returned for transport failures (Status == 0) and for responses with a
// status >= 400, the raw response body is kept for diagnosis.
type HttpError struct {
	Method string
	Url    string
	Status int
	Body   []byte
	Cause  error
}

func (e *HttpError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fanduel: http: %s %s: %v", e.Method, e.Url, e.Cause)
	}
	return fmt.Sprintf("fanduel: http: %s %s: status %d", e.Method, e.Url, e.Status)
}

func (e *HttpError) Unwrap() error {
	return e.Cause
}

// ParseError is returned when a body that should be JSON could not be decoded.
type ParseError struct {
	Body  []byte
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fanduel: parse json: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ShapeError is returned when well-formed JSON is missing a field that is needed to
// reshape the response, Path is a json-path-ish locator like `fixture_lists[0]`.
type ShapeError struct {
	Path string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("fanduel: unexpected response shape: missing %s", e.Path)
}

// IsAuthReason reports whether err is an *AuthError with the given reason.
func IsAuthReason(err error, reason AuthReason) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Reason == reason
	}
	return false
}

// IsUnauthorized reports whether err is an *HttpError carrying a 401.
func IsUnauthorized(err error) bool {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Status == http.StatusUnauthorized
	}
	return false
}

package cma

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Error ids carried in sys.id of a CMA error envelope.
const (
	ErrorIDNotFound           = "NotFound"
	ErrorIDBadRequest         = "BadRequest"
	ErrorIDAccessTokenInvalid = "AccessTokenInvalid"
	ErrorIDAccessDenied       = "AccessDenied"
	ErrorIDValidationFailed   = "ValidationFailed"
	ErrorIDVersionMismatch    = "VersionMismatch"
	ErrorIDRateLimitExceeded  = "RateLimitExceeded"
	ErrorIDUnknownKey         = "UnknownKey"
	ErrorIDInvalidEntry       = "InvalidEntry"
	ErrorIDServerError        = "ServerError"
)

// ErrorResponse is the error envelope returned by the API: sys.id carries
// the error id, plus a human message, the request id for support, and
// structured details.
type ErrorResponse struct {
	Sys       *Sys            `json:"sys,omitempty"       yaml:"sys,omitempty"`
	Message   string          `json:"message,omitempty"   yaml:"message,omitempty"`
	RequestID string          `json:"requestId,omitempty" yaml:"requestId,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"   yaml:"details,omitempty"`

	// StatusCode is the HTTP status the envelope arrived with; not part of
	// the wire format.
	StatusCode int `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	id := e.ID()
	if id == "" {
		id = "UnknownError"
	}

	if e.Message == "" {
		return fmt.Sprintf("%s (status %d, request %s)", id, e.StatusCode, e.RequestID)
	}

	return fmt.Sprintf("%s: %s (status %d, request %s)", id, e.Message, e.StatusCode, e.RequestID)
}

// ID returns the error id from the envelope's sys block.
func (e *ErrorResponse) ID() string {
	if e.Sys == nil {
		return ""
	}

	return e.Sys.ID
}

// RateLimitError is returned on HTTP 429 once the retry budget is
// exhausted (or when no retries were configured). RetryAfter is the wait
// the server advertised.
type RateLimitError struct {
	Response   *ErrorResponse
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// Unwrap exposes the underlying error envelope.
func (e *RateLimitError) Unwrap() error {
	if e.Response == nil {
		return nil
	}

	return e.Response
}

// RateWaitTooLongError is returned when the server-advertised rate-limit
// wait exceeds the configured ceiling. The client never sleeps in this
// case.
type RateWaitTooLongError struct {
	RetryAfter time.Duration
	MaxWait    time.Duration
	Response   *ErrorResponse
}

// Error implements the error interface.
func (e *RateWaitTooLongError) Error() string {
	return fmt.Sprintf("rate limit wait of %s exceeds maximum tolerable wait of %s", e.RetryAfter, e.MaxWait)
}

// Unwrap exposes the underlying error envelope.
func (e *RateWaitTooLongError) Unwrap() error {
	if e.Response == nil {
		return nil
	}

	return e.Response
}

// UnsupportedTypeError is returned by the resource builder when sys.type is
// not in its known set. It signals a client/server version mismatch and is
// never swallowed.
type UnsupportedTypeError struct {
	Type string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported resource type %q", e.Type)
}

// ValidationError is raised at the point of assignment, before any network
// call, when a setter or request receives an invalid value.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

// Static errors that can be wrapped with context.
var (
	ErrAccessTokenRequired = errors.New("access token is required")
	ErrMissingPathParam    = errors.New("missing path parameter")
	ErrUnknownResourceKind = errors.New("unknown resource kind")
	ErrMalformedSys        = errors.New("malformed sys block")
	ErrNilLink             = errors.New("link is nil or has no id")
	ErrNoMoreItems         = errors.New("no more items")
	ErrConfigRequired      = errors.New("config is required")
)

// IsNotFound checks if the error is a not-found response.
func IsNotFound(err error) bool {
	return hasErrorID(err, ErrorIDNotFound)
}

// IsUnauthorized checks if the error is an invalid-token response.
func IsUnauthorized(err error) bool {
	return hasErrorID(err, ErrorIDAccessTokenInvalid)
}

// IsVersionMismatch checks if the error is an optimistic-locking conflict.
func IsVersionMismatch(err error) bool {
	return hasErrorID(err, ErrorIDVersionMismatch)
}

// IsRateLimit checks if the error is a rate-limit response, whether or not
// the client retried before surfacing it.
func IsRateLimit(err error) bool {
	rateErr := &RateLimitError{}
	if errors.As(err, &rateErr) {
		return true
	}

	return hasErrorID(err, ErrorIDRateLimitExceeded)
}

func hasErrorID(err error, id string) bool {
	errResp := &ErrorResponse{}
	if errors.As(err, &errResp) {
		return errResp.ID() == id
	}

	return false
}

// ParseErrorResponse parses an error envelope from a response body.
func ParseErrorResponse(data []byte, statusCode int) *ErrorResponse {
	errResp := &ErrorResponse{StatusCode: statusCode}

	if len(data) > 0 {
		// A body that fails to parse still yields a usable error carrying
		// the status code.
		_ = json.Unmarshal(data, errResp)
	}

	return errResp
}

package scoring

import (
	"errors"
	"fmt"
	"time"
)

// FailureKind discriminates the ways a scoring call can fail. The request
// handler matches on the kind to choose a response status.
type FailureKind int

// Failure kinds, in rough order of distance from the wire.
const (
	// KindTimeout: the call exceeded the configured duration.
	KindTimeout FailureKind = iota
	// KindConnection: transport-level failure to reach the endpoint.
	KindConnection
	// KindNonSuccess: the endpoint answered with a status other than 200.
	KindNonSuccess
)

// String returns the kind's metrics label.
func (k FailureKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindNonSuccess:
		return "non_success"
	default:
		return "unknown"
	}
}

// Sentinel kinds usable with errors.Is.
var (
	ErrTimeout    = errors.New("scoring timeout")
	ErrConnection = errors.New("scoring connection failure")
	ErrNonSuccess = errors.New("scoring non-success status")
)

// Failure is the discriminated error value for an upstream scoring
// failure. Exactly one of the kind-specific fields is meaningful:
// Timeout for KindTimeout, Status and Body for KindNonSuccess.
type Failure struct {
	Kind    FailureKind
	Timeout time.Duration
	Status  int
	Body    string
	cause   error
}

// NewTimeoutFailure reports a call that exceeded the configured duration.
func NewTimeoutFailure(timeout time.Duration, cause error) *Failure {
	return &Failure{Kind: KindTimeout, Timeout: timeout, cause: cause}
}

// NewConnectionFailure reports a transport-level failure.
func NewConnectionFailure(cause error) *Failure {
	return &Failure{Kind: KindConnection, cause: cause}
}

// NewNonSuccessFailure reports a non-200 answer, carrying the raw body for
// diagnosis. The body is not parsed as JSON in this case.
func NewNonSuccessFailure(status int, body string) *Failure {
	return &Failure{Kind: KindNonSuccess, Status: status, Body: body}
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindTimeout:
		return fmt.Sprintf("Request timed out after %d seconds; the model endpoint may be slow or unavailable", int(f.Timeout.Seconds()))
	case KindConnection:
		return "Failed to connect to the model endpoint; check connectivity and the endpoint URL"
	case KindNonSuccess:
		return fmt.Sprintf("Request failed with status %d. Response: %s", f.Status, f.Body)
	default:
		return "scoring failed"
	}
}

// Is maps each kind to its sentinel so callers can use errors.Is without
// reaching into the struct.
func (f *Failure) Is(target error) bool {
	switch f.Kind {
	case KindTimeout:
		return target == ErrTimeout
	case KindConnection:
		return target == ErrConnection
	case KindNonSuccess:
		return target == ErrNonSuccess
	default:
		return false
	}
}

// Unwrap exposes the transport cause, when there is one.
func (f *Failure) Unwrap() error {
	return f.cause
}

// IsNetwork reports whether the failure is a network-class error (timeout
// or connection), which the handler maps to HTTP 500. Non-success answers
// from the endpoint are client-visible 400s.
func (f *Failure) IsNetwork() bool {
	return f.Kind == KindTimeout || f.Kind == KindConnection
}

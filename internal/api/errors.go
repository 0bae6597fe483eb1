package api

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrEmptyBody is returned when the backend answers 2xx with no body on an
// endpoint that is contractually required to return one.
var ErrEmptyBody = errors.New("empty response from server")

// StatusError represents a non-2xx HTTP response from the backend.
type StatusError struct {
	Code int
	Body string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

// TransportKind classifies a failure that happened before any HTTP status
// was received.
type TransportKind int

const (
	TransportOther TransportKind = iota
	TransportNoConnection
	TransportTimeout
	TransportHostUnreachable
)

// TransportError represents a network-level failure: no HTTP response was
// received at all.
type TransportError struct {
	Kind TransportKind
	Err  error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportNoConnection:
		return "no internet connection"
	case TransportTimeout:
		return "connection timeout"
	case TransportHostUnreachable:
		return "server unreachable"
	default:
		return fmt.Sprintf("network error: %v", e.Err)
	}
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// classifyTransport maps a round-trip error to a TransportError.
func classifyTransport(err error) *TransportError {
	kind := TransportOther

	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = TransportTimeout
	case errors.As(err, &dnsErr):
		kind = TransportHostUnreachable
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = TransportTimeout
	default:
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			kind = TransportNoConnection
		}
	}

	return &TransportError{Kind: kind, Err: err}
}

// StatusCode extracts the HTTP status code from an error, or 0 if the
// error is not a StatusError.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}

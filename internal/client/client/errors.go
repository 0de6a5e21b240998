package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("server unavailable")
	ErrBadResponse = errors.New("bad response")
)

// TransportError is the single failure type returned by Client methods.
// StatusCode is zero only when no HTTP response was received. A success
// response with an undecodable body keeps its status and wraps
// ErrBadResponse.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport error: %s", e.Message)
	}
	return fmt.Sprintf("transport error: %d %s", e.StatusCode, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets callers match the status-derived kinds with errors.Is.
func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		switch e.StatusCode {
		case 0, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedScore  = errors.New("malformed sentiment score")
	ErrSurfaceNotFound = errors.New("surface not found")
	ErrSurfaceLimit    = errors.New("surface limit reached")
	ErrUnknownLanguage = errors.New("unknown source language")
)

// TransportError reports a failed call to a remote collaborator: a transport
// failure, an unreadable body, or a non-success status.
type TransportError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnallowedException is returned when an exception handler is set for an
	// error kind the request context was not told to expect.
	ErrUnallowedException = errors.New("vkwave: unallowed exception")

	// ErrNilHandler is returned when a nil exception handler is installed.
	ErrNilHandler = errors.New("vkwave: handler is required")

	// ErrConnection marks transport failures: the request did not complete.
	ErrConnection = errors.New("vkwave: connection error")

	// ErrEncode marks params that can't be encoded as a request form.
	ErrEncode = errors.New("vkwave: encode error")

	// ErrDecode marks responses that are not valid JSON.
	ErrDecode = errors.New("vkwave: decode error")

	// ErrAPI marks responses carrying an API error envelope.
	ErrAPI = errors.New("vkwave: api error")
)

// APIError is an error reported by the API itself.
// It matches ErrAPI with errors.Is.
type APIError struct {
	Code    int64
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vkwave: api error %d: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return ErrAPI }

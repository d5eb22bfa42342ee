package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated means no bearer token was available. The call fails
// before anything goes over the wire.
var ErrUnauthenticated = errors.New("authentication token not found")

// ServiceError is a non-2xx response from the task service, with the
// message normalized out of the response body.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NetworkError is a transport-level failure: no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

package client

import "fmt"

// RequestError is a non-2xx response. Message is the server-supplied text or
// a generic "HTTP error" when the body could not be parsed.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// AuthorizationError is a 401: the token is missing, invalid or expired.
type AuthorizationError struct {
	Err *RequestError
}

func (e *AuthorizationError) Error() string {
	return e.Err.Error()
}

func (e *AuthorizationError) Unwrap() error {
	return e.Err
}

// NetworkError means no response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

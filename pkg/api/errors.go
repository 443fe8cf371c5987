package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is the single failure kind of the request helper. Transport
// faults, non-2xx statuses and unreadable payloads all match it via errors.Is.
var ErrRequestFailed = errors.New("request failed")

// RequestError carries the details of a failed call.
type RequestError struct {
	Method     string
	Endpoint   string
	StatusCode int // zero when no response arrived
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: %v (status %d)", e.Method, e.Endpoint, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

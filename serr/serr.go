// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package serr defines the error type service layers use to signal
// client-facing failures with an HTTP-equivalent status code. Anything that
// is not a *ServiceError is treated as an internal error by the HTTP layer.
package serr

import "fmt"

type ServiceError struct {
	Err        error
	Msg        string
	StatusCode int
}

func New(err error, statusCode int, msg string, args ...any) *ServiceError {
	return &ServiceError{
		Err:        err,
		Msg:        fmt.Sprintf(msg, args...),
		StatusCode: statusCode,
	}
}

func (e *ServiceError) Error() string {
	return e.Msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Package repository contains data access logic separated from HTTP
// handlers.  Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver-level errors directly.
package repository

import "errors"

// ErrStudentNotFound is returned when no record exists for the requested
// seat.  Handlers should translate this into an HTTP 404 response.
var ErrStudentNotFound = errors.New("student not found")

/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package rest

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Error is the base error for everything raised by this library.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates a base error with the given message
func NewError(message string) *Error {
	return &Error{Message: message}
}

// TimeoutError is returned when an operation exceeds the configured timeout
type TimeoutError struct {
	Timeout   time.Duration
	Operation string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Timeout after %v for operation: '%s'", e.Timeout, e.Operation)
}

// VersionError is returned when a function requires a higher server version
// than the one the session is connected to
type VersionError struct {
	Function        string
	RequiredVersion string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("Function '%s' requires TM1 server version >= '%s'",
		e.Function, e.RequiredVersion)
}

// NotAdminError is returned when an operation requires admin privileges
type NotAdminError struct {
	Function string
}

func (e *NotAdminError) Error() string {
	return fmt.Sprintf("Function '%s' requires admin permissions", e.Function)
}

// NotDataAdminError is returned when an operation requires DataAdmin privileges
type NotDataAdminError struct {
	Function string
}

func (e *NotDataAdminError) Error() string {
	return fmt.Sprintf("Function '%s' requires DataAdmin permissions", e.Function)
}

// NotSecurityAdminError is returned when an operation requires SecurityAdmin privileges
type NotSecurityAdminError struct {
	Function string
}

func (e *NotSecurityAdminError) Error() string {
	return fmt.Sprintf("Function '%s' requires SecurityAdmin permissions", e.Function)
}

// NotOpsAdminError is returned when an operation requires OperationsAdmin privileges
type NotOpsAdminError struct {
	Function string
}

func (e *NotOpsAdminError) Error() string {
	return fmt.Sprintf("Function '%s' requires OperationsAdmin permissions", e.Function)
}

// RestError carries the failed HTTP exchange
type RestError struct {
	StatusCode int
	Reason     string
	Response   string
	Headers    http.Header
}

func (e *RestError) Error() string {
	return fmt.Sprintf("Text: '%s' - Status Code: %d - Reason: '%s' - Headers: %v",
		e.Response, e.StatusCode, e.Reason, e.Headers)
}

// WriteFailureError is returned when every write operation in a batch failed
type WriteFailureError struct {
	Statuses      []string
	ErrorLogFiles []string
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("All %d write operations failed. Details: %s",
		len(e.Statuses), strings.Join(e.ErrorLogFiles, "; "))
}

// WritePartialFailureError is returned when some write operations in a batch failed
type WritePartialFailureError struct {
	Statuses      []string
	ErrorLogFiles []string
	Attempts      int
}

func (e *WritePartialFailureError) Error() string {
	return fmt.Sprintf("%d out of %d write operations failed partially. Details: %s",
		len(e.Statuses), e.Attempts, strings.Join(e.ErrorLogFiles, "; "))
}

// IsNotFound reports whether err is a RestError with HTTP status 404
func IsNotFound(err error) bool {
	var restErr *RestError
	if errors.As(err, &restErr) {
		return restErr.StatusCode == http.StatusNotFound
	}
	return false
}

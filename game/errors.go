package game

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of planner failure
type ErrorCode string

const (
	// TRANSIENT_NO_DATA: the state channel had nothing (or only part of a record) to read
	TRANSIENT_NO_DATA ErrorCode = "TRANSIENT_NO_DATA"
	// DEGENERATE_GEOMETRY: ball and target coincide
	DEGENERATE_GEOMETRY ErrorCode = "DEGENERATE_GEOMETRY"
	// TERRAIN_QUERY_FAILED: the terrain oracle could not answer
	TERRAIN_QUERY_FAILED ErrorCode = "TERRAIN_QUERY_FAILED"
	// CHANNEL_UNAVAILABLE: transport endpoints do not exist or cannot be opened yet
	CHANNEL_UNAVAILABLE ErrorCode = "CHANNEL_UNAVAILABLE"
	// WIRE_FORMAT_INVALID: a buffer does not match the fixed record layout
	WIRE_FORMAT_INVALID ErrorCode = "WIRE_FORMAT_INVALID"
	// CONFIG_INVALID: configuration failed validation
	CONFIG_INVALID ErrorCode = "CONFIG_INVALID"
)

// GolfError is a structured error with a code, message and optional cause
type GolfError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error formats as "[CODE] message" or "[CODE] message: cause"
func (e *GolfError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *GolfError) Unwrap() error {
	return e.Cause
}

// Is matches any GolfError with the same code
func (e *GolfError) Is(target error) bool {
	var golfErr *GolfError
	if errors.As(target, &golfErr) {
		return e.Code == golfErr.Code
	}
	return false
}

// NewError creates a non-retryable error
func NewError(code ErrorCode, message string) *GolfError {
	return &GolfError{Code: code, Message: message}
}

// NewRetryableError creates an error the caller should simply try again later
func NewRetryableError(code ErrorCode, message string) *GolfError {
	return &GolfError{Code: code, Message: message, Retryable: true}
}

// WrapError creates a non-retryable error around cause
func WrapError(code ErrorCode, message string, cause error) *GolfError {
	return &GolfError{Code: code, Message: message, Cause: cause}
}

// Sentinels for errors.Is comparisons
var (
	ErrNoData             = NewRetryableError(TRANSIENT_NO_DATA, "no complete state record available")
	ErrDegenerateGeometry = NewError(DEGENERATE_GEOMETRY, "ball and target coincide")
	ErrTerrainQuery       = NewError(TERRAIN_QUERY_FAILED, "terrain query failed")
	ErrChannelUnavailable = NewError(CHANNEL_UNAVAILABLE, "transport channel unavailable")
	ErrWireFormat         = NewError(WIRE_FORMAT_INVALID, "invalid wire record")
	ErrConfigInvalid      = NewError(CONFIG_INVALID, "invalid configuration")
)

// IsRetryable reports whether err is a GolfError marked retryable
func IsRetryable(err error) bool {
	var golfErr *GolfError
	if errors.As(err, &golfErr) {
		return golfErr.Retryable
	}
	return false
}

package types

import (
	"fmt"
	"net/http"
	"strings"
)

// Error types surfaced to clients in the "type" field of the error envelope
const (
	TypeMissingField     = "missingField"
	TypeUniqueConstraint = "uniqueConstraint"
	TypeValidation       = "validation"
	TypeUnauthenticated  = "unauthenticated"
	TypeForbidden        = "forbidden"
	TypeNotFound         = "notFound"
	TypeInternal         = "internal"
)

type CustomError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Type    string   `json:"type"`
	Fields  []string `json:"fields,omitempty"`
	Err     error    `json:"-"`
}

func (e *CustomError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%d: %s (%s) [type: %s]", e.Code, e.Message, strings.Join(e.Fields, ", "), e.Type)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// MissingFields reports every required field absent from a payload
func MissingFields(fields ...string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Missing required fields",
		Type:    TypeMissingField,
		Fields:  fields,
	}
}

// UniqueConstraint reports a store uniqueness conflict on field
func UniqueConstraint(field, message string) *CustomError {
	return &CustomError{
		Code:    http.StatusConflict,
		Message: message,
		Type:    TypeUniqueConstraint,
		Fields:  []string{field},
	}
}

// Validation reports fields whose values were rejected
func Validation(message string, fields ...string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
		Type:    TypeValidation,
		Fields:  fields,
	}
}

func Unauthenticated(message string) *CustomError {
	return &CustomError{Code: http.StatusUnauthorized, Message: message, Type: TypeUnauthenticated}
}

func Forbidden(message string) *CustomError {
	return &CustomError{Code: http.StatusForbidden, Message: message, Type: TypeForbidden}
}

func NotFound(message string) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: message, Type: TypeNotFound}
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(message string, err error) *CustomError {
	return &CustomError{Code: http.StatusInternalServerError, Message: message, Type: TypeInternal, Err: err}
}

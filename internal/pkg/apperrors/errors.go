package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrConflict = errors.New("resource conflict")

	ErrBusiness = errors.New("business rule violation")

	ErrValidation = errors.New("validation failed")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")
)

// NotFoundError carries the exact user-facing message for a missing identity,
// e.g. "Id 42 not found".
type NotFoundError struct {
	Message string
	Cause   error
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

func NewNotFoundError(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrNotFound, &NotFoundError{Message: fmt.Sprintf(format, args...)})
}

// BusinessError is a domain rule violation that is neither "not found" nor
// "conflict". The message is surfaced verbatim to the client.
type BusinessError struct {
	Message string
	Cause   error
}

func (e *BusinessError) Error() string {
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Cause
}

func NewBusinessError(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrBusiness, &BusinessError{Message: fmt.Sprintf(format, args...)})
}

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}

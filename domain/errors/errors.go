// Package errors defines the domain error taxonomy shared across layers.
package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownBank is returned when no parser recognizes a statement
	ErrUnknownBank = errors.New("bank not recognized")

	// ErrDownload is returned when a model artifact cannot be fetched
	ErrDownload = errors.New("download failed")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return e.Type.Error()
}

// Is implements errors.Is interface
func (e *DomainError) Is(target error) bool {
	return errors.Is(e.Type, target)
}

// Unwrap implements errors.Unwrap interface
func (e *DomainError) Unwrap() error {
	return e.Type
}

// NewDomainError creates a new domain error
func NewDomainError(errType error, message string) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WithDetails adds details to the domain error
func (e *DomainError) WithDetails(key string, value interface{}) *DomainError {
	e.Details[key] = value
	return e
}

// ValidationError represents a validation error with field-specific errors
type ValidationError struct {
	Fields map[string][]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d fields", len(e.Fields))
}

// AddFieldError adds a field-specific error
func (e *ValidationError) AddFieldError(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors returns true if there are any field errors
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// DownloadError describes a failed model artifact download.
type DownloadError struct {
	Artifact string
	URL      string
	Err      error
}

// Error implements the error interface
func (e *DownloadError) Error() string {
	return fmt.Sprintf("download error for %s from %s: %v", e.Artifact, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Is reports ErrDownload for all download errors.
func (e *DownloadError) Is(target error) bool {
	return target == ErrDownload
}

// ParserError describes a failure inside a bank statement parser.
type ParserError struct {
	Bank    string
	Section string
	Err     error
}

// Error implements the error interface
func (e *ParserError) Error() string {
	return fmt.Sprintf("parser error for %s in %s: %v", e.Bank, e.Section, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *ParserError) Unwrap() error {
	return e.Err
}

// RepositoryError represents a repository-specific error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s on %s: %v",
		e.Operation, e.Entity, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// Package errors provides standardized error handling for jigolo.
// It defines the error kinds the session, the discovery walker and the
// snippet stores report, plus helpers for consistent creation, wrapping and
// classification of those errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrLibraryPath = NewConfigError("Cannot determine library path.", "", ConfigNotSet, nil)
	ErrEmptyTitle  = NewInvalidInputError("Title cannot be empty.", nil)
	ErrNoSelection = NewInvalidInputError("No text selected.", nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	NotADirectory
	FileReadFailed
	FileCreateFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	ConfigNotSet
	// Snippet store error kinds
	LibraryCorrupt
	StoreReadFailed
	StoreWriteFailed
	StoreQueryFailed
	// Validation
	InvalidInputData
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// StoreError represents errors raised by a snippet store backend
type StoreError struct {
	ApplicationError
	operation string
	context   map[string]interface{}
}

// NewStoreError creates a new store error
func NewStoreError(msg string, err error) *StoreError {
	return &StoreError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: StoreQueryFailed,
		},
		context: make(map[string]interface{}),
	}
}

// WithKind overrides the kind of the store error
func (e *StoreError) WithKind(kind ErrorKind) *StoreError {
	e.kind = kind
	return e
}

// WithOperation adds operation information to the store error
func (e *StoreError) WithOperation(operation string) *StoreError {
	e.operation = operation
	return e
}

// WithContext adds context information to the store error
func (e *StoreError) WithContext(key string, value interface{}) *StoreError {
	e.context[key] = value
	return e
}

// Error returns the store error message
func (e *StoreError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: operation=%s: %v", e.msg, e.operation, e.err)
		}
		return fmt.Sprintf("%s: operation=%s", e.msg, e.operation)
	}
	return e.ApplicationError.Error()
}

// Operation returns the store operation associated with the error
func (e *StoreError) Operation() string {
	return e.operation
}

// Context returns the context information associated with the error
func (e *StoreError) Context() map[string]interface{} {
	return e.context
}

// InvalidInputError represents errors related to invalid user input
type InvalidInputError struct {
	ApplicationError
	context map[string]interface{}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(msg string, err error) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInputData,
		},
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the invalid input error
func (e *InvalidInputError) WithContext(key string, value interface{}) *InvalidInputError {
	e.context[key] = value
	return e
}

// Context returns the context information associated with the error
func (e *InvalidInputError) Context() map[string]interface{} {
	return e.context
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first application error in err's chain,
// or Unknown when there is none.
func KindOf(err error) ErrorKind {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind()
	}
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind()
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Kind()
	}
	var inputErr *InvalidInputError
	if errors.As(err, &inputErr) {
		return inputErr.Kind()
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return Unknown
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileAccessDenied
	}
	return false
}

// IsNotADirectory checks if the error reports a path that is not a directory
func IsNotADirectory(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == NotADirectory
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsConfigNotSet checks if the error reports an unresolvable setting
func IsConfigNotSet(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == ConfigNotSet
	}
	return false
}

// IsStoreError checks if the error is a snippet store error
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// IsInvalidInputError checks if the error is an invalid input error
func IsInvalidInputError(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}

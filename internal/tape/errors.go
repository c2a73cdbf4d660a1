package tape

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes tape errors.
type ErrorCode string

const (
	// CodeMissingLogDirectory indicates Load found no directory at the
	// parent of the configured path. The directory is never created
	// implicitly; absence is surfaced to the caller.
	CodeMissingLogDirectory ErrorCode = "MISSING_LOG_FOLDER"

	// CodeMissingDirectory indicates Save found no directory at the
	// parent of the configured path.
	CodeMissingDirectory ErrorCode = "MISSING_FOLDER"

	// CodeInvalidLogItem indicates a legacy item defined neither an
	// output nor an error and cannot be classified.
	CodeInvalidLogItem ErrorCode = "INVALID_LOG_ITEM"

	// CodeReadFailure indicates the log file exists but could not be
	// read or parsed. Unlike absence, this is never degraded to an
	// empty log.
	CodeReadFailure ErrorCode = "READ_FAILURE"
)

// Error is a tape error with a stable code for programmatic handling.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Path is the configured tape path, when relevant.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsMissingDirectory returns true for directory-absence failures from
// either Load or Save. Uses errors.As to handle wrapped errors.
func IsMissingDirectory(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == CodeMissingLogDirectory || te.Code == CodeMissingDirectory
	}
	return false
}

// IsInvalidLogItem returns true if the error is a legacy-item
// classification failure.
func IsInvalidLogItem(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Code == CodeInvalidLogItem
}

func newMissingLogDirectoryError(path string) *Error {
	return &Error{
		Code:    CodeMissingLogDirectory,
		Message: "logs folder does not exist",
		Path:    path,
	}
}

func newMissingDirectoryError(path string) *Error {
	return &Error{
		Code:    CodeMissingDirectory,
		Message: "folder does not exist",
		Path:    path,
	}
}

func newInvalidLogItemError(name string) *Error {
	return &Error{
		Code:    CodeInvalidLogItem,
		Message: fmt.Sprintf("item %q defines neither output nor error", name),
	}
}

func newReadFailureError(path string, err error) *Error {
	return &Error{
		Code:    CodeReadFailure,
		Message: "failed to read tape log",
		Path:    path,
		Err:     err,
	}
}

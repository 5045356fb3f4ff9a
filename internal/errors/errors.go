package errors

import (
	"errors"
	"fmt"
)

// Exit codes for wtm
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitGitError         = 2
	ExitWorktreeNotFound = 3
	ExitConfigError      = 4
	ExitEditorError      = 5
	ExitDiscoveryError   = 6
	ExitReportError      = 7
)

// WTMError is the base error type for wtm
type WTMError struct {
	Code    int
	Message string
	Cause   error
}

func (e *WTMError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *WTMError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *WTMError) ExitCode() int {
	return e.Code
}

// New creates a new WTMError
func New(code int, message string) *WTMError {
	return &WTMError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a WTMError
func Wrap(code int, message string, cause error) *WTMError {
	return &WTMError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// GitError returns an error for a failed git invocation. The output of the
// git command, when available, belongs in the cause so it reaches the user.
func GitError(op string, cause error) *WTMError {
	return Wrap(ExitGitError, fmt.Sprintf("git %s failed", op), cause)
}

// WorktreeNotFound returns an error for a worktree index with no entry.
func WorktreeNotFound(index int) *WTMError {
	return New(ExitWorktreeNotFound, fmt.Sprintf("no worktree with index %d", index))
}

// NotARepo returns an error for running outside a git repository.
func NotARepo(path string) *WTMError {
	return New(ExitGitError, fmt.Sprintf("not a git repository: %s", path))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *WTMError {
	return Wrap(ExitConfigError, message, cause)
}

// EditorError returns an error for editor launch failures
func EditorError(message string, cause error) *WTMError {
	return Wrap(ExitEditorError, message, cause)
}

// DiscoveryError returns an error for documentation discovery failures
func DiscoveryError(message string, cause error) *WTMError {
	return Wrap(ExitDiscoveryError, message, cause)
}

// ReportError returns an error for report generation failures
func ReportError(message string, cause error) *WTMError {
	return Wrap(ExitReportError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *WTMError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var wtmErr *WTMError
	if errors.As(err, &wtmErr) {
		return wtmErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

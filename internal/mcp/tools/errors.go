package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/usestring/saz-mcp/internal/export"
	"github.com/usestring/saz-mcp/internal/store"
	"github.com/usestring/saz-mcp/pkg/saz"
	"github.com/usestring/saz-mcp/pkg/saz/htmlindex"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeArchive      = "ARCHIVE_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapCaptureError converts a capture, store or export error to a coded error.
func WrapCaptureError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return err
	}

	switch {
	case errors.Is(err, store.ErrEmptyName):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "capture is required", Cause: err}
	case errors.Is(err, store.ErrOutsideCaptureDir):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "capture must be inside the capture directory", Cause: err}
	case errors.Is(err, os.ErrNotExist):
		coded = &CodedError{Code: ErrCodeNotFound, Message: "capture file not found", Cause: err}
	case errors.Is(err, store.ErrSessionNotFound):
		coded = &CodedError{Code: ErrCodeNotFound, Message: "session not found", Cause: err}
	case errors.Is(err, export.ErrCaptureNotExported):
		coded = &CodedError{Code: ErrCodeNotFound, Message: "capture has not been exported", Cause: err}
	case errors.Is(err, htmlindex.ErrNoIndex):
		coded = &CodedError{Code: ErrCodeNotFound, Message: "capture has no session table", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	case saz.KindOf(err) != nil:
		coded = &CodedError{Code: ErrCodeArchive, Message: describeKind(saz.KindOf(err)), Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
	}

	slog.Warn("capture tool error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

func describeKind(kind error) string {
	switch kind {
	case saz.ErrEmpty:
		return "archive is empty"
	case saz.ErrSpanned:
		return "spanned archives are not supported"
	case saz.ErrRead:
		return "archive could not be read"
	default:
		return "archive is malformed"
	}
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

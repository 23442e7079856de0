package errdefs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the inbound adapter can pick a response
// without parsing messages.
type Kind int

const (
	KindInternal Kind = iota
	KindUserNotFound
	KindFileNotFound
	KindFileFormat
	KindFileExists
	KindSizeLimitExceeded
	KindTransferFailed
)

// Error carries a kind plus the human-readable message shown to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// UserNotFound reports an empty or unknown user namespace.
func UserNotFound(format string, args ...any) *Error {
	return newError(KindUserNotFound, format, args...)
}

// FileNotFound reports a missing or unselected file.
func FileNotFound(format string, args ...any) *Error {
	return newError(KindFileNotFound, format, args...)
}

// FileFormat reports an extension outside the allowlist.
func FileFormat(format string, args ...any) *Error {
	return newError(KindFileFormat, format, args...)
}

// FileExists reports a name collision under the user's directory.
func FileExists(format string, args ...any) *Error {
	return newError(KindFileExists, format, args...)
}

// SizeLimitExceeded reports a declared request size above the configured maximum.
func SizeLimitExceeded(format string, args ...any) *Error {
	return newError(KindSizeLimitExceeded, format, args...)
}

// TransferFailed reports a failed byte transfer. The underlying cause is
// deliberately not exposed to callers.
func TransferFailed(format string, args ...any) *Error {
	return newError(KindTransferFailed, format, args...)
}

// Internal reports an unanticipated server-side failure.
func Internal(format string, args ...any) *Error {
	return newError(KindInternal, format, args...)
}

// KindOf extracts the kind from err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsClientError reports whether err is correctable by the caller.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindUserNotFound, KindFileNotFound, KindFileFormat, KindFileExists, KindSizeLimitExceeded:
		return true
	default:
		return false
	}
}

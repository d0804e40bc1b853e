package genstudio

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure by how it is handled and how it is reported to
// the user. Each kind maps to one user-facing message class.
type Kind string

const (
	// KindNoCredential means no usable API key exists. Never retried.
	KindNoCredential Kind = "no_credential"

	// KindQuota means the key hit a rate limit or exhausted its quota.
	// Retried with rotation and backoff.
	KindQuota Kind = "quota"

	// KindAuth means the key was rejected as invalid, expired or lacking
	// permission. Retried with rotation.
	KindAuth Kind = "auth"

	// KindSafety means the provider refused the request on content policy grounds.
	KindSafety Kind = "safety"

	// KindRefusal means the model answered with text where media was expected.
	KindRefusal Kind = "refusal"

	// KindEmptyOutput means the model returned no usable data.
	KindEmptyOutput Kind = "empty_output"

	// KindMalformed means the response did not have the expected structure.
	KindMalformed Kind = "malformed"

	// KindNetwork means the request failed at the transport level.
	KindNetwork Kind = "network"

	// KindCanceled means the caller's context ended the operation.
	KindCanceled Kind = "canceled"

	// KindUnknown covers everything else.
	KindUnknown Kind = "unknown"
)

// Sentinel errors for matching with errors.Is. Any *Error of the same kind matches.
var (
	ErrNoCredential = &Error{Kind: KindNoCredential}
	ErrQuota        = &Error{Kind: KindQuota}
	ErrAuth         = &Error{Kind: KindAuth}
	ErrSafety       = &Error{Kind: KindSafety}
	ErrRefusal      = &Error{Kind: KindRefusal}
	ErrEmptyOutput  = &Error{Kind: KindEmptyOutput}
	ErrMalformed    = &Error{Kind: KindMalformed}
	ErrNetwork      = &Error{Kind: KindNetwork}
)

// Error is a kinded studio error.
type Error struct {
	Kind  Kind
	Op    string // user action in progress, e.g. "editing image"
	Msg   string // provider or diagnostic detail
	Code  int    // HTTP status code, 0 if not applicable
	Cause error
}

// Error returns a diagnostic message including the operation and cause.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.kind()))
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Cause != nil && e.Cause.Error() != e.Msg {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a bare sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Cause == nil && t.Kind == e.kind()
}

// Retryable returns true for failures that a different credential may fix.
func (e *Error) Retryable() bool {
	k := e.kind()
	return k == KindQuota || k == KindAuth
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// UserMessage returns the message shown to the user for this kind of failure.
func (e *Error) UserMessage() string {
	switch e.kind() {
	case KindNoCredential:
		return "No API key is available. Add a key in API key management."
	case KindQuota:
		if d := e.detail(); d != "" {
			return fmt.Sprintf("The system is busy or the API key quota is exhausted. (Details: %s)", d)
		}
		return "The system is busy or the API key quota is exhausted."
	case KindAuth:
		return "The API key is invalid or has expired."
	case KindSafety:
		if e.Msg != "" {
			return fmt.Sprintf("Your request was rejected by the safety filters (%s). Try a different image or description.", e.Msg)
		}
		return "Your request was rejected by the safety filters. Try a different image or description."
	case KindRefusal:
		return fmt.Sprintf("The AI could not complete the request and replied: %q", e.Msg)
	case KindEmptyOutput, KindMalformed:
		return "The AI could not produce output for this request. Try a different, more detailed input."
	case KindNetwork:
		return "Network connection error. Check your internet connection and try again."
	case KindCanceled:
		return "The request was canceled."
	default:
		if d := e.detail(); d != "" {
			return d
		}
		if e.Op != "" {
			return fmt.Sprintf("An unknown error occurred while %s. Please try again later.", e.Op)
		}
		return "An unknown error occurred. Please try again later."
	}
}

func (e *Error) kind() Kind {
	if e.Kind == "" {
		return KindUnknown
	}
	return e.Kind
}

func (e *Error) detail() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return ""
}

// NewError creates an error of the given kind.
func NewError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// NewQuotaError creates a rate-limit or quota error.
func NewQuotaError(msg string, statusCode int, cause error) *Error {
	return &Error{Kind: KindQuota, Msg: msg, Code: statusCode, Cause: cause}
}

// NewAuthError creates an invalid-credential error.
func NewAuthError(msg string, statusCode int, cause error) *Error {
	return &Error{Kind: KindAuth, Msg: msg, Code: statusCode, Cause: cause}
}

// NewSafetyError creates a content policy refusal carrying the provider's reason.
func NewSafetyError(reason string) *Error {
	return &Error{Kind: KindSafety, Msg: reason}
}

// NewRefusalError records the text a model returned instead of media.
func NewRefusalError(text string) *Error {
	return &Error{Kind: KindRefusal, Msg: text}
}

// KindOf returns the kind of err, or KindUnknown if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind()
	}
	return KindUnknown
}

// IsRetryable returns true if err is a quota or auth failure.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable()
	}
	return false
}

// UserMessage returns the user-facing message for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return err.Error()
}

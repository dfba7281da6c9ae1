package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies completion failures
type ErrorKind string

const (
	KindCredentialMissing ErrorKind = "credential_missing"
	KindTransport         ErrorKind = "transport"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindUnknown           ErrorKind = "unknown"
)

// ServiceError is the single error type surfaced by completion calls.
// Message is short and safe to show to the user.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ErrCredentialMissing is returned when the selected provider has no API key.
var ErrCredentialMissing = &ServiceError{Kind: KindCredentialMissing, Message: "credential missing"}

// NewError creates a ServiceError with a formatted message
func NewError(kind ErrorKind, err error, format string, args ...any) *ServiceError {
	return &ServiceError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func transportError(provider string, err error) *ServiceError {
	return NewError(KindTransport, err, "failed to call %s API: %v", provider, err)
}

// KindOf returns the kind of err, or KindUnknown if err is not a ServiceError.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// AsServiceError returns err as a ServiceError, wrapping foreign errors as unknown.
func AsServiceError(err error) *ServiceError {
	if err == nil {
		return nil
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return &ServiceError{
		Kind:    KindUnknown,
		Message: "An unknown error occurred while communicating with the AI.",
		Err:     err,
	}
}

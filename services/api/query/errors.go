package query

import "fmt"

// Kind classifies an engine failure for the transport layer.
type Kind int

const (
	// KindValidation means the caller sent a malformed parameter.
	KindValidation Kind = iota + 1
	// KindUnavailable means no usable dataset has been published.
	KindUnavailable
	// KindInternal means the computation failed unexpectedly.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnavailable:
		return "unavailable"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the only error type returned by Engine operations.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// ClientError reports whether the caller is at fault.
func (e *Error) ClientError() bool { return e.Kind == KindValidation }

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

var errUnavailable = &Error{Kind: KindUnavailable, Message: "Dataset not available."}

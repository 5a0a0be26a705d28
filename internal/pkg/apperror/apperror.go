package apperror

import "errors"

// Kind classifies a failure for transport mapping. NotFound deliberately
// covers both "record absent" and "record owned by someone else" so that
// existence can never be probed across owners.
type Kind string

const (
	KindUnauthenticated      Kind = "UNAUTHENTICATED"
	KindNotFound             Kind = "NOT_FOUND"
	KindStorageUnavailable   Kind = "STORAGE_UNAVAILABLE"
	KindInferenceUnavailable Kind = "INFERENCE_UNAVAILABLE"
	KindValidation           Kind = "VALIDATION_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the classification from an error chain. Unclassified
// errors report an empty Kind and should be treated as internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Package blame provides a custom error type that adds additional information and functionality to standard errors.
package blame

// Blame represents a custom error type that provides additional information and functionality.
type Blame interface {
	// error is embedded to ensure Blame implements the error interface.
	error

	// FetchErrCode returns the error code associated with the error.
	FetchErrCode() ErrorCode

	// FetchComponent returns the component associated with the error.
	FetchComponent() Component

	// FetchMessage returns the error message.
	FetchMessage() string

	// WithMessage sets the error message and returns the updated Blame instance.
	WithMessage(string) *Error

	// FetchFields returns a map of additional error fields.
	FetchFields() map[string]any

	// WithField adds a new field to the error and returns the updated Blame instance.
	WithField(key string, value any) *Error

	// FetchSource returns the source of the error.
	FetchSource() string

	// FetchCauses returns a slice of underlying errors that caused this error.
	FetchCauses() []error

	// WithCause adds a new underlying error to the error and returns the updated Blame instance.
	WithCause(err error) *Error

	// WithComponent sets the component associated with the error and returns the updated Blame instance.
	WithComponent(component Component) *Error

	// IsFatal reports whether the error belongs to a component that must abort the run.
	IsFatal() bool
}

// NewBlame creates a new instance of Blame with the provided error code and message. It captures the source of the error at the point of instantiation.
func NewBlame(errCode ErrorCode, message string) Blame {
	return NewError(errCode, message)
}

// NewBasicBlame creates a new instance of Blame with the provided error code. It captures the source of the error at the point of instantiation.
func NewBasicBlame(errCode ErrorCode) Blame {
	return NewBasicError(errCode)
}

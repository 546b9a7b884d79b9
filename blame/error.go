package blame

import (
	"fmt"
	"runtime"
	"strings"
)

// Error struct holds the error information
type Error struct {
	errCode   ErrorCode
	component Component
	message   string
	fields    map[string]any
	causes    []error
	source    string
}

// NewError creates a new Error instance
func NewError(errorCode ErrorCode, message string) *Error {
	return &Error{
		errCode: errorCode,
		message: message,
		fields:  map[string]any{},
		causes:  make([]error, 0),
		source:  findSource(),
	}
}

// NewBasicError creates a new Error instance with the given error code
func NewBasicError(errorCode ErrorCode) *Error {
	return &Error{
		errCode: errorCode,
		fields:  map[string]any{},
		causes:  make([]error, 0),
		source:  findSource(),
	}
}

// FetchErrCode returns the error code of the error as a ErrorCode
func (e *Error) FetchErrCode() ErrorCode {
	return e.errCode
}

// FetchComponent returns the component of the error as a Component
func (e *Error) FetchComponent() Component {
	return e.component
}

// FetchMessage returns the message of the error as a string
func (e *Error) FetchMessage() string {
	return e.message
}

// WithMessage sets the message of the error and returns the updated Error instance.
func (e *Error) WithMessage(msg string) *Error {
	e.message = msg
	return e
}

// FetchFields returns the fields of the error as a map[string]any
func (e *Error) FetchFields() map[string]any {
	return e.fields
}

// WithField adds a field to the error and returns the updated Error instance.
func (e *Error) WithField(key string, value any) *Error {
	e.fields[key] = value
	return e
}

// FetchSource returns the source of the error as a string
func (e *Error) FetchSource() string {
	return e.source
}

// FetchCauses returns the causes of the error as a slice of errors
func (e *Error) FetchCauses() []error {
	return e.causes
}

// WithCause adds a cause to the error and returns the updated Error instance.
func (e *Error) WithCause(err error) *Error {
	if err != nil {
		e.causes = append(e.causes, err)
	}
	return e
}

// WithComponent sets the component of the error and returns the updated Error instance.
func (e *Error) WithComponent(component Component) *Error {
	e.component = component
	return e
}

// IsFatal implements Blame. Configuration errors and exhausted transport
// errors must stop the run; everything else is recoverable in place.
func (e *Error) IsFatal() bool {
	return e.component == Configuration || e.component == Transport
}

// Error returns the error message with the causes as a string
func (e *Error) Error() string {
	if len(e.causes) == 0 {
		if e.message != "" {
			return fmt.Sprintf("%s: %s", e.errCode.String(), e.message)
		}
		return e.errCode.String()
	}
	return fmt.Sprintf("%s (causes: %v)", e.errCode.String(), e.causes)
}

// findSource captures the source of the error at the point of instantiation.
func findSource() string {
	_, file, line, _ := runtime.Caller(2)
	if idx := strings.LastIndex(file, "/"); idx >= 0 {
		file = file[idx+1:]
	}
	return fmt.Sprintf("%s:%d", file, line)
}

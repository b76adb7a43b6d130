package fetcher

import (
	"errors"
	"fmt"
)

// ErrorType defines the category of a fetch error
type ErrorType string

// Error types
const (
	TransportError ErrorType = "transport"
	StatusError    ErrorType = "status"
	DecodeError    ErrorType = "decode"
	ResponseError  ErrorType = "response"
)

// Sentinel errors exposed through errors.Is
var (
	ErrStatus       = errors.New("unexpected HTTP status")
	ErrMissingField = errors.New("missing field in API response")
)

// Error carries the category of a failed request together with the URL it
// was made against.
type Error struct {
	Type ErrorType
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Type, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(errorType ErrorType, rawURL string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Type: errorType, URL: rawURL, Err: err}
}

// IsErrorType checks if any error in err's chain is a fetch error of the given type
func IsErrorType(err error, errorType ErrorType) bool {
	var fe *Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Type == errorType
}

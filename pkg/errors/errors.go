package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies the failures a crawl run can hit
type ErrorType string

const (
	// ErrorTypeNetwork covers transport-level failures: DNS, connect, timeout.
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeHTTPStatus covers non-2xx responses.
	ErrorTypeHTTPStatus ErrorType = "http_status"
	// ErrorTypeStructure covers missing expected HTML elements or attributes.
	// A structure error means the site markup changed and must be looked at,
	// so it is never skipped or downgraded.
	ErrorTypeStructure ErrorType = "structure"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// Error is a crawl error carrying its classification and the URL it
// occurred on, when one is known.
type Error struct {
	Type    ErrorType
	Message string
	URL     string
	Code    int
}

func (e *Error) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s error: %s (url: %s)", e.Type, e.Message, e.URL)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// NewNetwork creates a transport failure error.
func NewNetwork(message, url string) *Error {
	return &Error{Type: ErrorTypeNetwork, Message: message, URL: url}
}

// NewHTTPStatus creates an error for a non-success HTTP response.
func NewHTTPStatus(code int, url string) *Error {
	return &Error{
		Type:    ErrorTypeHTTPStatus,
		Message: fmt.Sprintf("unexpected status code %d", code),
		URL:     url,
		Code:    code,
	}
}

// NewStructure creates an error for missing expected page structure.
func NewStructure(message, url string) *Error {
	return &Error{Type: ErrorTypeStructure, Message: message, URL: url}
}

// IsStructure reports whether err is a structural parse error.
func IsStructure(err error) bool {
	return typeOf(err) == ErrorTypeStructure
}

// IsFetch reports whether err came from the network layer, either a
// transport failure or a bad HTTP status.
func IsFetch(err error) bool {
	t := typeOf(err)
	return t == ErrorTypeNetwork || t == ErrorTypeHTTPStatus
}

func typeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

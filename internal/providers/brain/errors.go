package brain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport marks failures where no usable answer came back from the
// brain: the request could not be sent or the body was not JSON.
var ErrTransport = errors.New("brain unreachable")

// APIError is an answer from the brain whose status is not a success.
type APIError struct {
	Endpoint   string
	Status     string
	Message    string
	HTTPStatus int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status %q, http %d)", e.Endpoint, e.UserMessage(), e.Status, e.HTTPStatus)
}

// UserMessage is the human readable text the brain sent along with the
// failure, or the HTTP status text when it sent none.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.HTTPStatus); text != "" {
		return text
	}
	return "unknown error"
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

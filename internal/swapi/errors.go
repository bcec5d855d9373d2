package swapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport matches every failure produced by the gateway.
	ErrTransport = errors.New("catalog transport error")

	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("catalog resource not found")
)

// TransportError is a network failure, a non-2xx status or a malformed body.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		if e.Body == "" {
			return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
		}
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

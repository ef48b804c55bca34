package artic

import (
	"errors"
	"fmt"
)

// ErrMissingData is returned when a response decodes but has no data field.
var ErrMissingData = errors.New("missing data field in response")

// StatusClass classifies a non-2xx response.
type StatusClass string

const (
	// StatusClassClient represents 4xx responses.
	StatusClassClient StatusClass = "client"

	// StatusClassServer represents 5xx responses.
	StatusClassServer StatusClass = "server"

	// StatusClassOther represents anything else outside 2xx.
	StatusClassOther StatusClass = "other"
)

// APIError is returned for a non-2xx response from the artwork API.
type APIError struct {
	StatusCode int
	Class      StatusClass
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("artic %s error: unexpected status %d: %s", e.Class, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("artic %s error: unexpected status %d", e.Class, e.StatusCode)
}

func classify(status int) StatusClass {
	switch {
	case status >= 400 && status < 500:
		return StatusClassClient
	case status >= 500 && status < 600:
		return StatusClassServer
	default:
		return StatusClassOther
	}
}

package source

import (
	"fmt"
)

// AuthenticationError indicates that the credentials for a source could not be acquired.
type AuthenticationError struct {
	Source string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: authentication failed (%v)", e.Source, e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// TransportError is a failed request or a non-success HTTP response for a report.
// StatusCode is 0 if the request did not receive a response.
type TransportError struct {
	Report     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: request failed with HTTP status %d", e.Report, e.StatusCode)
	}

	return fmt.Sprintf("%s: request failed (%v)", e.Report, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

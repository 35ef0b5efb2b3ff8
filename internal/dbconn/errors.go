package dbconn

import (
	"errors"
	"fmt"
)

// UnsupportedURLError is returned when a connection URL names no known
// driver.
type UnsupportedURLError struct {
	URL string
}

func (e *UnsupportedURLError) Error() string {
	return fmt.Sprintf("unsupported connection url %q: expected sqlite:, file:, postgres:// or postgresql://", e.URL)
}

// IsUnsupportedURL reports whether err is an *UnsupportedURLError.
func IsUnsupportedURL(err error) bool {
	var e *UnsupportedURLError
	return errors.As(err, &e)
}

// ConnectError wraps a failure to reach the database.
type ConnectError struct {
	Driver string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Driver, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// IsConnectError reports whether err is a *ConnectError.
func IsConnectError(err error) bool {
	var e *ConnectError
	return errors.As(err, &e)
}

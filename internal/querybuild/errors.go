package querybuild

import (
	"errors"
	"fmt"
)

// ErrNoConnection is returned when a split is requested but no database
// connection was supplied to probe the split column. It signals a caller
// bug rather than a bad configuration.
var ErrNoConnection = errors.New("split column requires a database connection to probe bounds")

// ProbeError reports a failure of the min/max probe against the database.
type ProbeError struct {
	// Query is the probe statement that failed.
	Query string

	// Err is the driver error.
	Err error
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe query failed: %v", e.Err)
}

// Unwrap returns the driver error.
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// IsProbeError reports whether err is or wraps a *ProbeError.
func IsProbeError(err error) bool {
	var pe *ProbeError
	return errors.As(err, &pe)
}

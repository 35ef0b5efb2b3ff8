package request

import (
	"errors"
	"fmt"
)

// Option names, as used in config files. The CLI reports these in errors so
// that a message points at the setting to change.
const (
	FieldTable              = "table"
	FieldSQLFile            = "sqlFile"
	FieldLimit              = "limit"
	FieldPartition          = "partition"
	FieldPartitionColumn    = "partitionColumn"
	FieldPartitionPeriod    = "partitionPeriod"
	FieldSplitColumn        = "splitColumn"
	FieldQueryParallelism   = "queryParallelism"
	FieldSkipPartitionCheck = "skipPartitionCheck"
	FieldMinPartitionPeriod = "minPartitionPeriod"
)

// ConfigError reports a combination of options that is not well formed.
type ConfigError struct {
	// Field is the option that violated a constraint.
	Field string

	// Message describes the constraint.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

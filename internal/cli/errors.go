package cli

import (
	"errors"

	"github.com/roach88/dbexport/internal/config"
	"github.com/roach88/dbexport/internal/dbconn"
	"github.com/roach88/dbexport/internal/querybuild"
	"github.com/roach88/dbexport/internal/request"
	"github.com/roach88/dbexport/internal/temporal"
)

// Error codes for CLI responses.
const (
	ErrCodeGeneric = "E001" // Generic/unknown error

	// Input errors (exit code 2)
	ErrCodeInvalidConfig  = "E201" // Option combination rejected by validation
	ErrCodeInvalidLiteral = "E202" // Date, time or period literal does not parse
	ErrCodeConfigFile     = "E203" // Config file unreadable or malformed
	ErrCodeUnsupportedURL = "E204" // Connection URL names no known driver
	ErrCodeNoConnection   = "E207" // Split requested without a connection URL

	// Database errors (exit code 1)
	ErrCodeConnect = "E205" // Database unreachable
	ErrCodeProbe   = "E206" // Bounds query failed
)

// classification is how an error surfaces on the command line.
type classification struct {
	Code     string
	ExitCode int
	Details  any
}

// classify maps an error from the export pipeline to its code, exit code
// and structured details.
func classify(err error) classification {
	var (
		configErr *request.ConfigError
		parseErr  *temporal.ParseError
		loadErr   *config.LoadError
		probeErr  *querybuild.ProbeError
		connErr   *dbconn.ConnectError
	)
	switch {
	case errors.As(err, &configErr):
		return classification{ErrCodeInvalidConfig, ExitCommandError, map[string]string{"field": configErr.Field}}
	case errors.As(err, &parseErr):
		return classification{ErrCodeInvalidLiteral, ExitCommandError, map[string]string{
			"kind":    string(parseErr.Kind),
			"literal": parseErr.Literal,
		}}
	case errors.As(err, &loadErr):
		return classification{ErrCodeConfigFile, ExitCommandError, map[string]string{"path": loadErr.Path}}
	case dbconn.IsUnsupportedURL(err):
		return classification{ErrCodeUnsupportedURL, ExitCommandError, nil}
	case errors.Is(err, querybuild.ErrNoConnection):
		return classification{ErrCodeNoConnection, ExitCommandError, nil}
	case errors.As(err, &connErr):
		return classification{ErrCodeConnect, ExitFailure, map[string]string{"driver": connErr.Driver}}
	case errors.As(err, &probeErr):
		return classification{ErrCodeProbe, ExitFailure, map[string]string{"query": probeErr.Query}}
	default:
		return classification{ErrCodeGeneric, ExitFailure, nil}
	}
}

// fail reports err through the formatter and returns the matching
// ExitError.
func fail(formatter *OutputFormatter, err error) error {
	c := classify(err)
	_ = formatter.Error(c.Code, err.Error(), c.Details)
	exitErr := WrapExitError(c.ExitCode, c.Code, err)
	exitErr.reported = true
	return exitErr
}

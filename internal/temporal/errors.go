package temporal

import (
	"errors"
	"fmt"
)

// LiteralKind identifies which grammar a literal failed to match.
type LiteralKind string

const (
	// KindInstant is a partial or full date/time literal.
	KindInstant LiteralKind = "instant"

	// KindPeriod is an ISO-8601 date period such as P1D.
	KindPeriod LiteralKind = "period"
)

// ParseError reports a literal that matches none of the accepted forms.
type ParseError struct {
	// Kind is the grammar that was attempted.
	Kind LiteralKind

	// Literal is the input exactly as received.
	Literal string

	// Reason is a short description of what was wrong, if known.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot parse %s %q: %s", e.Kind, e.Literal, e.Reason)
	}
	return fmt.Sprintf("cannot parse %s %q", e.Kind, e.Literal)
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func instantError(literal, reason string) *ParseError {
	return &ParseError{Kind: KindInstant, Literal: literal, Reason: reason}
}

func periodError(literal, reason string) *ParseError {
	return &ParseError{Kind: KindPeriod, Literal: literal, Reason: reason}
}

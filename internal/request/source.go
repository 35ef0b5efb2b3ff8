package request

import (
	"fmt"
	"regexp"
)

// tablePattern restricts table names to a single unqualified identifier.
var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Source is where the exported rows come from: either a Table or a RawSQL
// query.
//
// Source is a sealed interface. Only types in this package implement it, so
// a type switch over Table and RawSQL is exhaustive.
type Source interface {
	isSource()

	// String describes the source for logs and summaries.
	String() string
}

// Table selects every row of a single table.
type Table struct {
	Name string
}

// RawSQL wraps a user supplied query. The text is used verbatim as a
// subquery.
type RawSQL struct {
	Text string
}

func (Table) isSource()  {}
func (RawSQL) isSource() {}

func (t Table) String() string  { return "table " + t.Name }
func (r RawSQL) String() string { return fmt.Sprintf("query (%d bytes)", len(r.Text)) }

// NewTable validates name and returns it as a Table source.
func NewTable(name string) (Table, error) {
	if !tablePattern.MatchString(name) {
		return Table{}, &ConfigError{
			Field:   FieldTable,
			Message: fmt.Sprintf("invalid table name %q: must match %s", name, tablePattern),
		}
	}
	return Table{Name: name}, nil
}

// NewRawSQL returns text as a RawSQL source. The text must not be empty.
func NewRawSQL(text string) (RawSQL, error) {
	if text == "" {
		return RawSQL{}, &ConfigError{Field: FieldSQLFile, Message: "query text is empty"}
	}
	return RawSQL{Text: text}, nil
}

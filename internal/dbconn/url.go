package dbconn

import (
	"net/url"
	"strings"
)

// Driver names as registered with database/sql.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Target is a resolved connection URL.
type Target struct {
	Driver string
	DSN    string
}

// Resolve maps a connection URL to a driver and data source name.
func Resolve(raw string) (Target, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= 5 && strings.EqualFold(s[:5], "jdbc:") {
		s = s[5:]
	}
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return Target{Driver: DriverPostgres, DSN: s}, nil
	case strings.HasPrefix(lower, "sqlite3:"):
		return sqliteTarget(s[len("sqlite3:"):])
	case strings.HasPrefix(lower, "sqlite:"):
		return sqliteTarget(s[len("sqlite:"):])
	case strings.HasPrefix(lower, "file:"):
		// go-sqlite3 understands file: URIs natively.
		return Target{Driver: DriverSQLite, DSN: s}, nil
	case strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		return sqliteTarget(s)
	}
	return Target{}, &UnsupportedURLError{URL: Redact(raw)}
}

func sqliteTarget(path string) (Target, error) {
	path = strings.TrimPrefix(path, "//")
	if path == "" {
		return Target{}, &UnsupportedURLError{URL: "sqlite:"}
	}
	return Target{Driver: DriverSQLite, DSN: "file:" + pathEscaper.Replace(path) + "?mode=ro"}, nil
}

// pathEscaper escapes the characters that go-sqlite3 would read as URI
// syntax in a plain path.
var pathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// Redact hides the password of a URL so it can be logged.
func Redact(raw string) string {
	prefix := ""
	s := raw
	if len(s) >= 5 && strings.EqualFold(s[:5], "jdbc:") {
		prefix, s = s[:5], s[5:]
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return raw
	}
	return prefix + u.Redacted()
}

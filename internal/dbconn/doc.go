// Package dbconn opens the read-only database connection used to probe the
// split column.
//
// Connection URLs may carry a "jdbc:" prefix, which is stripped. The
// remainder selects the driver:
//
//	sqlite:<path>, sqlite3:<path>, file:<path>, <path>.db  -> SQLite
//	postgres://..., postgresql://...                       -> PostgreSQL (pgx)
//
// Plain SQLite paths are opened as "file:<path>?mode=ro", so a missing file
// is a connection error rather than a new empty database. file: URIs are
// passed to the driver as given.
//
// SQLite handles are pinned to a single connection with query_only set.
// PostgreSQL handles are opened through pgx's database/sql adapter and
// default every transaction to read only.
package dbconn

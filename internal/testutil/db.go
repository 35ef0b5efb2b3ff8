package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// coffeesSchema is the fixture table used by probe and CLI tests. The id
// column is the split column; CREATED is a text timestamp used as the
// partition column.
const coffeesSchema = `
CREATE TABLE COFFEES (
	id       INTEGER PRIMARY KEY,
	COF_NAME TEXT    NOT NULL,
	SIZE     INTEGER NOT NULL,
	CREATED  TEXT    NOT NULL
);
INSERT INTO COFFEES (id, COF_NAME, SIZE, CREATED) VALUES
	(1, 'costa rica caffee', 14, '2027-07-31 10:00:00'),
	(2, 'colombian caffee',  15, '2027-08-15 09:30:00');
CREATE TABLE EMPTY_COFFEES (
	id INTEGER PRIMARY KEY
);
`

// CoffeesDBPath creates a SQLite database file holding the COFFEES fixture in
// a temporary directory and returns its path.
func CoffeesDBPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coffees.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(coffeesSchema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}
	return path
}

// OpenCoffeesDB returns an open handle on a fresh COFFEES fixture. The
// handle is closed when the test ends.
func OpenCoffeesDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", CoffeesDBPath(t))
	if err != nil {
		t.Fatalf("open fixture database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCoffeesDB(t *testing.T) {
	db := OpenCoffeesDB(t)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM COFFEES").Scan(&n))
	assert.Equal(t, 2, n)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM EMPTY_COFFEES").Scan(&n))
	assert.Equal(t, 0, n)
}

func TestCoffeesDBPath_FreshPerCall(t *testing.T) {
	assert.NotEqual(t, CoffeesDBPath(t), CoffeesDBPath(t))
}

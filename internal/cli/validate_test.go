package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validateArgs = []string{
	"--table", "COFFEES",
	"--partition", "2027-07-31",
	"--partition-column", "CREATED",
	"--split-column", "id",
	"--query-parallelism", "4",
	"--limit", "1000",
}

func TestValidate_Text(t *testing.T) {
	out, err := execute(newTestValidateCommand("text"), validateArgs...)
	require.NoError(t, err)
	assertGolden(t, "validate_text", out)
}

func TestValidate_JSON(t *testing.T) {
	out, err := execute(newTestValidateCommand("json"), validateArgs...)
	require.NoError(t, err)
	assertGolden(t, "validate_json", out)
}

func TestValidate_DoesNotConnect(t *testing.T) {
	out, err := execute(newTestValidateCommand("text"),
		"--connection-url", "postgres://nobody@127.0.0.1:1/none",
		"--table", "COFFEES",
		"--split-column", "id",
		"--query-parallelism", "2",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Request valid")
}

func TestValidate_SplitRequiresBoth(t *testing.T) {
	out, err := execute(newTestValidateCommand("text"), "--table", "COFFEES", "--split-column", "id")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E201]")
	assert.Contains(t, out, "queryParallelism")
}

func TestValidate_VerboseShowsDetails(t *testing.T) {
	cmd := newValidateCommand(&ExportOptions{
		RootOptions: &RootOptions{Format: "text", Verbose: true},
	})
	out, err := execute(cmd, "--table", "COFFEES", "--partition-column", "CREATED")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E201]")
	assert.Contains(t, out, "Details: map[field:partitionColumn]")
}

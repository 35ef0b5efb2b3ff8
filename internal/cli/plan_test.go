package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbexport/internal/testutil"
)

func TestPlan_TableWithLimit(t *testing.T) {
	out, err := execute(newTestPlanCommand("text"), "--table", "COFFEES", "--limit", "7")
	require.NoError(t, err)
	assertGolden(t, "plan_table_limit", out)
}

func TestPlan_SQLFileWithPartition(t *testing.T) {
	out, err := execute(newTestPlanCommand("text"),
		"--sql-file", "testdata/coffees.sql",
		"--partition", "2027-07-31",
		"--partition-column", "col",
		"--partition-period", "P1M",
		"--limit", "7",
	)
	require.NoError(t, err)
	assertGolden(t, "plan_sql_file_partition", out)
}

func TestPlan_SplitJSON(t *testing.T) {
	dbPath := testutil.CoffeesDBPath(t)

	out, err := execute(newTestPlanCommand("json"),
		"--connection-url", "jdbc:sqlite:"+dbPath,
		"--table", "COFFEES",
		"--split-column", "id",
		"--query-parallelism", "5",
	)
	require.NoError(t, err)
	assertGolden(t, "plan_split_json", out)
}

func TestPlan_ConfigFileWithOverride(t *testing.T) {
	dbPath := testutil.CoffeesDBPath(t)

	out, err := execute(newTestPlanCommand("text"),
		"--config", "testdata/export.yaml",
		"--connection-url", dbPath,
		"--limit", "5",
	)
	require.NoError(t, err)
	assertGolden(t, "plan_config_override", out)
}

func TestPlan_MissingSourceJSON(t *testing.T) {
	out, err := execute(newTestPlanCommand("json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, IsReported(err))
	assertGolden(t, "plan_missing_source_json", out)
}

func TestPlan_Errors(t *testing.T) {
	dbPath := testutil.CoffeesDBPath(t)

	tests := []struct {
		name     string
		args     []string
		code     string
		exitCode int
	}{
		{
			name:     "table and sql file",
			args:     []string{"--table", "COFFEES", "--sql-file", "testdata/coffees.sql"},
			code:     ErrCodeInvalidConfig,
			exitCode: ExitCommandError,
		},
		{
			name:     "bad table name",
			args:     []string{"--table", "COFFEES; DROP TABLE x"},
			code:     ErrCodeInvalidConfig,
			exitCode: ExitCommandError,
		},
		{
			name:     "stale partition",
			args:     []string{"--table", "COFFEES", "--partition", "2027-07-01"},
			code:     ErrCodeInvalidConfig,
			exitCode: ExitCommandError,
		},
		{
			name:     "bad partition literal",
			args:     []string{"--table", "COFFEES", "--partition", "31/07/2027"},
			code:     ErrCodeInvalidLiteral,
			exitCode: ExitCommandError,
		},
		{
			name:     "bad period literal",
			args:     []string{"--table", "COFFEES", "--partition-period", "one day"},
			code:     ErrCodeInvalidLiteral,
			exitCode: ExitCommandError,
		},
		{
			name:     "missing sql file",
			args:     []string{"--sql-file", "testdata/missing.sql"},
			code:     ErrCodeInvalidConfig,
			exitCode: ExitCommandError,
		},
		{
			name:     "missing config file",
			args:     []string{"--config", "testdata/missing.yaml"},
			code:     ErrCodeConfigFile,
			exitCode: ExitCommandError,
		},
		{
			name:     "split without connection",
			args:     []string{"--table", "COFFEES", "--split-column", "id", "--query-parallelism", "2"},
			code:     ErrCodeNoConnection,
			exitCode: ExitCommandError,
		},
		{
			name: "unsupported connection url",
			args: []string{"--connection-url", "jdbc:mysql://localhost/shop",
				"--table", "COFFEES", "--split-column", "id", "--query-parallelism", "2"},
			code:     ErrCodeUnsupportedURL,
			exitCode: ExitCommandError,
		},
		{
			name: "probe failure",
			args: []string{"--connection-url", dbPath,
				"--table", "COFFEES", "--split-column", "no_such_column", "--query-parallelism", "2"},
			code:     ErrCodeProbe,
			exitCode: ExitFailure,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(newTestPlanCommand("json"), tc.args...)
			require.Error(t, err)
			assert.Equal(t, tc.exitCode, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestPlan_TextErrorOutput(t *testing.T) {
	out, err := execute(newTestPlanCommand("text"), "--table", "COFFEES", "--limit", "0")
	require.Error(t, err)
	assert.Equal(t, "Error [E201]: invalid configuration: limit: must be a positive number, got 0\n", out)
}

func TestPlan_NoConnectionOpenedWithoutSplit(t *testing.T) {
	// The URL is unusable; plan must not try it when nothing needs probing.
	out, err := execute(newTestPlanCommand("text"),
		"--connection-url", "jdbc:mysql://localhost/shop",
		"--table", "COFFEES",
	)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM COFFEES WHERE 1=1\n", out)
}

func TestPlan_UsesGeneratedPlanID(t *testing.T) {
	cmd := newPlanCommand(&PlanOptions{
		ExportOptions: ExportOptions{
			RootOptions: &RootOptions{Format: "json"},
			Clock:       testutil.NewFixedClock(testNow),
		},
		IDs: testutil.NewFixedIDGenerator("plan-42"),
	})
	out, err := execute(cmd, "--table", "COFFEES")
	require.NoError(t, err)

	var resp struct {
		Data PlanResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "plan-42", resp.Data.PlanID)
	assert.Equal(t, []string{"SELECT * FROM COFFEES WHERE 1=1"}, resp.Data.Queries)
}

func TestPlan_RejectsPositionalArgs(t *testing.T) {
	_, err := execute(newTestPlanCommand("text"), "COFFEES")
	require.Error(t, err)
}

package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"

	"github.com/roach88/dbexport/internal/testutil"
)

// testNow keeps 2027-07-31 partitions fresh.
var testNow = time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC)

func newTestPlanCommand(format string) *cobra.Command {
	return newPlanCommand(&PlanOptions{
		ExportOptions: ExportOptions{
			RootOptions: &RootOptions{Format: format},
			Clock:       testutil.NewFixedClock(testNow),
		},
		IDs: testutil.NewFixedIDGenerator(""),
	})
}

func newTestValidateCommand(format string) *cobra.Command {
	return newValidateCommand(&ExportOptions{
		RootOptions: &RootOptions{Format: format},
		Clock:       testutil.NewFixedClock(testNow),
	})
}

func newTestProbeCommand(format string) *cobra.Command {
	return newProbeCommand(&ExportOptions{
		RootOptions: &RootOptions{Format: format},
		Clock:       testutil.NewFixedClock(testNow),
	})
}

// execute runs cmd with args and returns what it wrote to stdout. Log output
// goes to a discarded buffer.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(got))
}

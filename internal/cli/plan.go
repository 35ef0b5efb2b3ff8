package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/dbexport/internal/querybuild"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	ExportOptions

	// IDs allows overriding the plan ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs IDGenerator
}

// PlanResult is the JSON payload of the plan command.
type PlanResult struct {
	PlanID  string   `json:"plan_id"`
	Source  string   `json:"source"`
	Queries []string `json:"queries"`
}

// String renders the statements one per line, the plan command's text output.
func (r PlanResult) String() string {
	return strings.Join(r.Queries, "\n")
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	return newPlanCommand(&PlanOptions{ExportOptions: ExportOptions{RootOptions: rootOpts}})
}

func newPlanCommand(opts *PlanOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the SQL statements that extract an export",
		Long: `Validate an export request and print the SQL statements that extract it.

Each statement selects from the table or query, restricted to the partition
window when a partition column is set. With --split-column and
--query-parallelism the split column bounds are probed over
--connection-url and one statement is printed per range.

Example:
  dbexport plan --table COFFEES --limit 1000
  dbexport plan --config export.yaml --partition 2027-07-31
  dbexport plan --connection-url jdbc:postgresql://db/shop --table COFFEES \
    --split-column id --query-parallelism 4`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, cmd)
		},
	}

	bindExportFlags(cmd, &opts.ExportOptions)

	return cmd
}

func runPlan(opts *PlanOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose, cmd.ErrOrStderr())
	formatter := newFormatter(opts.RootOptions, cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := opts.resolve(cmd)
	if err != nil {
		return fail(formatter, err)
	}

	q, closeDB, err := r.connect(ctx)
	if err != nil {
		return fail(formatter, err)
	}
	defer closeDB()

	queries, err := querybuild.New(r.req).BuildQueries(ctx, q)
	if err != nil {
		return fail(formatter, err)
	}

	ids := opts.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	result := PlanResult{
		PlanID:  ids.Generate(),
		Source:  r.req.Source().String(),
		Queries: queries,
	}
	slog.Info("plan built", "plan_id", result.PlanID, "source", result.Source, "statements", len(queries))

	return formatter.Success(result)
}

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/dbexport/internal/querybuild"
	"github.com/roach88/dbexport/internal/request"
	"github.com/roach88/dbexport/internal/split"
)

// ProbeResult is the JSON payload of the probe command.
type ProbeResult struct {
	Query  string        `json:"query"`
	Min    int64         `json:"min"`
	Max    int64         `json:"max"`
	Ranges []split.Range `json:"ranges"`
}

func (r ProbeResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "query:  %s\n", r.Query)
	fmt.Fprintf(&sb, "min:    %d\n", r.Min)
	fmt.Fprintf(&sb, "max:    %d\n", r.Max)
	sb.WriteString("ranges:")
	for _, rg := range r.Ranges {
		fmt.Fprintf(&sb, "\n  %s", rg)
	}
	return sb.String()
}

// NewProbeCommand creates the probe command.
func NewProbeCommand(rootOpts *RootOptions) *cobra.Command {
	return newProbeCommand(&ExportOptions{RootOptions: rootOpts})
}

func newProbeCommand(opts *ExportOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Show the split column bounds and the ranges they produce",
		Long: `Run the bounds query for the split column and print the observed
minimum, maximum and the ranges the export would be split into.

Requires --connection-url, --split-column and --query-parallelism.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(opts, cmd)
		},
	}

	bindExportFlags(cmd, opts)

	return cmd
}

func runProbe(opts *ExportOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose, cmd.ErrOrStderr())
	formatter := newFormatter(opts.RootOptions, cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := opts.resolve(cmd)
	if err != nil {
		return fail(formatter, err)
	}
	if _, ok := r.req.SplitColumn(); !ok {
		return fail(formatter, &request.ConfigError{
			Field:   request.FieldSplitColumn,
			Message: "probe needs splitColumn and queryParallelism",
		})
	}

	q, closeDB, err := r.connect(ctx)
	if err != nil {
		return fail(formatter, err)
	}
	defer closeDB()

	b := querybuild.New(r.req)
	query, _ := b.ProbeQuery()
	formatter.VerboseLog("Probe query: %s", query)

	min, max, err := b.Bounds(ctx, q)
	if err != nil {
		return fail(formatter, err)
	}
	parallelism, _ := r.req.Parallelism()
	result := ProbeResult{
		Query:  query,
		Min:    min,
		Max:    max,
		Ranges: split.Split(min, max, parallelism),
	}
	slog.Info("bounds probed", "min", min, "max", max, "ranges", len(result.Ranges))

	return formatter.Success(result)
}

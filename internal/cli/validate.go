package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dbexport/internal/request"
)

// ValidationResult is the JSON payload of the validate command.
type ValidationResult struct {
	Valid   bool            `json:"valid"`
	Request request.Summary `json:"request"`
}

func (r ValidationResult) String() string {
	var sb strings.Builder
	sb.WriteString("✓ Request valid\n")
	writeSummary(&sb, r.Request)
	return strings.TrimSuffix(sb.String(), "\n")
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return newValidateCommand(&ExportOptions{RootOptions: rootOpts})
}

func newValidateCommand(opts *ExportOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an export request without touching the database",
		Long: `Validate export options and print the resolved request.

Runs every validation rule in order and stops at the first violation. No
database connection is opened, even when --connection-url is set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	bindExportFlags(cmd, opts)

	return cmd
}

func runValidate(opts *ExportOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose, cmd.ErrOrStderr())
	formatter := newFormatter(opts.RootOptions, cmd)

	r, err := opts.resolve(cmd)
	if err != nil {
		return fail(formatter, err)
	}

	return formatter.Success(ValidationResult{Valid: true, Request: r.req.Summary()})
}

// writeSummary prints the set fields of s, one per line.
func writeSummary(w io.Writer, s request.Summary) {
	line := func(key, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-18s %s\n", key+":", value)
		}
	}
	line("source", s.Source)
	line("partition", s.Partition)
	line("partition column", s.PartitionColumn)
	line("partition period", s.PartitionPeriod)
	line("split column", s.SplitColumn)
	if s.Parallelism != nil {
		line("query parallelism", strconv.Itoa(*s.Parallelism))
	}
	if s.Limit != nil {
		line("limit", strconv.FormatInt(*s.Limit, 10))
	}
}

package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/dbexport/internal/config"
	"github.com/roach88/dbexport/internal/dbconn"
	"github.com/roach88/dbexport/internal/querybuild"
	"github.com/roach88/dbexport/internal/request"
)

// ExportOptions holds the export flags shared by plan, validate and probe.
type ExportOptions struct {
	*RootOptions

	ConfigPath         string
	ConnectionURL      string
	Table              string
	SQLFile            string
	Limit              int64
	Partition          string
	PartitionColumn    string
	PartitionPeriod    string
	SplitColumn        string
	QueryParallelism   int
	SkipPartitionCheck bool
	MinPartitionPeriod string

	// Clock allows overriding the freshness clock (for testing).
	// If nil, defaults to request.SystemClock.
	Clock request.Clock
}

// bindExportFlags registers the export flags on cmd.
func bindExportFlags(cmd *cobra.Command, opts *ExportOptions) {
	f := cmd.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "export config file (.yaml, .yml or .cue)")
	f.StringVar(&opts.ConnectionURL, "connection-url", "", "database URL, e.g. jdbc:postgresql://host/db or sqlite:path.db")
	f.StringVar(&opts.Table, "table", "", "table to export")
	f.StringVar(&opts.SQLFile, "sql-file", "", "file holding the query to export")
	f.Int64Var(&opts.Limit, "limit", 0, "maximum rows per statement")
	f.StringVar(&opts.Partition, "partition", "", "partition date or instant, e.g. 2027-07-31")
	f.StringVar(&opts.PartitionColumn, "partition-column", "", "column the partition window filters on")
	f.StringVar(&opts.PartitionPeriod, "partition-period", "", "partition width as an ISO-8601 period (default P1D)")
	f.StringVar(&opts.SplitColumn, "split-column", "", "numeric column to split the export on")
	f.IntVar(&opts.QueryParallelism, "query-parallelism", 0, "number of statements to split the export into")
	f.BoolVar(&opts.SkipPartitionCheck, "skip-partition-check", false, "accept partitions older than the freshness threshold")
	f.StringVar(&opts.MinPartitionPeriod, "min-partition-period", "", "oldest accepted partition, overrides the default threshold")
}

// overrides returns the flags the user actually set. Unset flags leave the
// config file value in place.
func (o *ExportOptions) overrides(cmd *cobra.Command) config.File {
	changed := cmd.Flags().Changed
	var f config.File
	if changed("connection-url") {
		f.ConnectionURL = request.Ptr(o.ConnectionURL)
	}
	if changed("table") {
		f.Table = request.Ptr(o.Table)
	}
	if changed("sql-file") {
		f.SQLFile = request.Ptr(o.SQLFile)
	}
	if changed("limit") {
		f.Limit = request.Ptr(o.Limit)
	}
	if changed("partition") {
		f.Partition = request.Ptr(o.Partition)
	}
	if changed("partition-column") {
		f.PartitionColumn = request.Ptr(o.PartitionColumn)
	}
	if changed("partition-period") {
		f.PartitionPeriod = request.Ptr(o.PartitionPeriod)
	}
	if changed("split-column") {
		f.SplitColumn = request.Ptr(o.SplitColumn)
	}
	if changed("query-parallelism") {
		f.QueryParallelism = request.Ptr(o.QueryParallelism)
	}
	if changed("skip-partition-check") {
		f.SkipPartitionCheck = request.Ptr(o.SkipPartitionCheck)
	}
	if changed("min-partition-period") {
		f.MinPartitionPeriod = request.Ptr(o.MinPartitionPeriod)
	}
	return f
}

// resolved is a validated request together with its connection URL.
type resolved struct {
	req           *request.Request
	connectionURL string
}

// resolve loads the config file, applies flag overrides and validates the
// result. No database is touched.
func (o *ExportOptions) resolve(cmd *cobra.Command) (*resolved, error) {
	var file config.File
	if o.ConfigPath != "" {
		slog.Debug("loading config file", "path", o.ConfigPath)
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	}
	merged := file.Merge(o.overrides(cmd))

	opts, err := merged.Options()
	if err != nil {
		return nil, err
	}
	req, err := request.FromOptions(opts, o.Clock)
	if err != nil {
		return nil, err
	}

	r := &resolved{req: req}
	if merged.ConnectionURL != nil {
		r.connectionURL = *merged.ConnectionURL
	}
	return r, nil
}

// connect opens the database when the request needs a probe. It returns a
// nil Querier, not a typed nil, when no connection is opened, and a close
// function that is always safe to call.
func (r *resolved) connect(ctx context.Context) (querybuild.Querier, func(), error) {
	noop := func() {}
	if _, ok := r.req.SplitColumn(); !ok || r.connectionURL == "" {
		return nil, noop, nil
	}
	db, err := dbconn.Open(ctx, r.connectionURL)
	if err != nil {
		return nil, noop, err
	}
	return db, func() { _ = db.Close() }, nil
}

// setupLogging installs the process logger the way every command does:
// text to stderr, Debug when verbose.
func setupLogging(verbose bool, w io.Writer) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// newFormatter creates the formatter for cmd.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// Package querybuild renders a validated export request into the SQL
// statements that extract it.
//
// Every statement starts from a base query anchored with "WHERE 1=1" so that
// each filter is appended uniformly as " AND ...":
//
//	SELECT * FROM <table> WHERE 1=1
//	SELECT * FROM (<raw sql>) WHERE 1=1
//
// followed, in order, by the partition window, the split range (one
// statement per range) and finally the LIMIT clause.
//
// Output is deterministic: the same request and the same probed bounds
// always produce the same statements in the same order.
package querybuild

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/roach88/dbexport/internal/request"
	"github.com/roach88/dbexport/internal/split"
)

// dateLayout renders partition bounds as calendar dates.
const dateLayout = "2006-01-02"

// Querier runs the single-row probe query. *sql.DB, *sql.Conn and *sql.Tx
// all satisfy it.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Builder renders statements for one request. It holds no mutable state and
// may be shared.
type Builder struct {
	req *request.Request
}

// New creates a Builder for req.
func New(req *request.Request) *Builder {
	return &Builder{req: req}
}

// BaseQuery returns the unfiltered query for the request's source.
func (b *Builder) BaseQuery() string {
	switch src := b.req.Source().(type) {
	case request.Table:
		return fmt.Sprintf("SELECT * FROM %s WHERE 1=1", src.Name)
	case request.RawSQL:
		return fmt.Sprintf("SELECT * FROM (%s) WHERE 1=1", src.Text)
	default:
		// Source is sealed; FromOptions never builds anything else.
		panic(fmt.Sprintf("querybuild: unsupported source type %T", src))
	}
}

// FilteredQuery returns the base query with the partition window applied,
// if the request has one.
func (b *Builder) FilteredQuery() string {
	return b.BaseQuery() + b.partitionPredicate()
}

// partitionPredicate renders the half-open date window
// [partition, partition+period) on the partition column.
func (b *Builder) partitionPredicate() string {
	col, ok := b.req.PartitionColumn()
	if !ok {
		return ""
	}
	p, ok := b.req.Partition()
	if !ok {
		return ""
	}
	start := startOfDay(p)
	end := b.req.PartitionPeriod().AddTo(start)
	return fmt.Sprintf(" AND %s >= '%s' AND %s < '%s'",
		col, start.Format(dateLayout), col, end.Format(dateLayout))
}

// limitSuffix renders the LIMIT clause, or "" when no limit is set.
func (b *Builder) limitSuffix() string {
	if n, ok := b.req.Limit(); ok {
		return fmt.Sprintf(" LIMIT %d", n)
	}
	return ""
}

// ProbeQuery returns the statement that reads the bounds of the split
// column over the filtered query. ok is false when no split is requested.
func (b *Builder) ProbeQuery() (query string, ok bool) {
	col, ok := b.req.SplitColumn()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("SELECT MIN(%s), MAX(%s) FROM (%s)", col, col, b.FilteredQuery()), true
}

// Bounds runs the probe query and returns the observed minimum and maximum
// of the split column. NULL bounds, as returned for an empty result set,
// read as zero.
func (b *Builder) Bounds(ctx context.Context, q Querier) (min, max int64, err error) {
	query, ok := b.ProbeQuery()
	if !ok {
		return 0, 0, fmt.Errorf("bounds: request has no split column")
	}
	if isNil(q) {
		return 0, 0, ErrNoConnection
	}

	slog.Debug("probing split column bounds", "query", query)

	var lo, hi sql.NullInt64
	if err := q.QueryRowContext(ctx, query).Scan(&lo, &hi); err != nil {
		return 0, 0, &ProbeError{Query: query, Err: err}
	}
	return lo.Int64, hi.Int64, nil
}

// BuildQueries returns the statements that together extract the request.
//
// Without a split the result is a single statement and q is not used; it may
// be nil. With a split, q is used to probe the split column bounds and one
// statement is returned per range, in ascending range order. A nil q then
// yields ErrNoConnection and a failed probe a *ProbeError.
//
// The result is never empty when err is nil.
func (b *Builder) BuildQueries(ctx context.Context, q Querier) ([]string, error) {
	filtered := b.FilteredQuery()
	limit := b.limitSuffix()

	col, ok := b.req.SplitColumn()
	if !ok {
		return []string{filtered + limit}, nil
	}
	parallelism, _ := b.req.Parallelism()

	min, max, err := b.Bounds(ctx, q)
	if err != nil {
		return nil, err
	}

	ranges := split.Split(min, max, parallelism)
	queries := make([]string, 0, len(ranges))
	for _, r := range ranges {
		queries = append(queries, fmt.Sprintf("%s AND %s >= %d AND %s <= %d%s",
			filtered, col, r.Low, col, r.High, limit))
	}

	slog.Debug("split column bounds resolved",
		"column", col,
		"min", min,
		"max", max,
		"parallelism", parallelism,
		"statements", len(queries))

	return queries, nil
}

// startOfDay truncates t to midnight UTC of its calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isNil reports whether q is nil or wraps a nil pointer, map, slice, func,
// chan or interface of any concrete type.
func isNil(q Querier) bool {
	if q == nil {
		return true
	}
	v := reflect.ValueOf(q)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

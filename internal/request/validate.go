package request

import (
	"strings"
	"time"

	"github.com/roach88/dbexport/internal/temporal"
)

// draft carries a request through the guard pipeline.
type draft struct {
	opts Options
	now  time.Time
	req  Request
}

// guard checks one rule. It may extend d.req; a non-nil error stops the
// pipeline.
type guard func(d *draft) error

// guards run in order. See the package documentation.
var guards = []guard{
	checkSource,
	parseLiterals,
	checkPartitionColumn,
	checkSplit,
	checkPositive,
	checkFreshness,
}

// FromOptions validates opts and builds a Request.
//
// Validation stops at the first failing rule. The returned error is a
// *ConfigError, or a *temporal.ParseError when a date, time or period
// literal cannot be parsed. A nil clock means SystemClock.
func FromOptions(opts Options, clock Clock) (*Request, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	d := &draft{
		opts: opts,
		now:  clock.Now().UTC(),
		req:  Request{partitionPeriod: temporal.Day},
	}
	for _, g := range guards {
		if err := g(d); err != nil {
			return nil, err
		}
	}
	req := d.req
	return &req, nil
}

func checkSource(d *draft) error {
	table, sql := d.opts.Table, d.opts.SQL
	switch {
	case table != nil && sql != nil:
		return configErrorf(FieldTable, "table and sqlFile are mutually exclusive; set exactly one")
	case table == nil && sql == nil:
		return configErrorf(FieldTable, "one of table or sqlFile is required")
	case table != nil:
		t, err := NewTable(*table)
		if err != nil {
			return err
		}
		d.req.source = t
	default:
		r, err := NewRawSQL(*sql)
		if err != nil {
			return err
		}
		d.req.source = r
	}
	return nil
}

func parseLiterals(d *draft) error {
	if s := d.opts.PartitionPeriod; s != nil {
		p, err := temporal.ParsePeriod(*s)
		if err != nil {
			return err
		}
		if p.IsZero() || p.Years < 0 || p.Months < 0 || p.Days < 0 {
			return configErrorf(FieldPartitionPeriod, "period %q must be positive", *s)
		}
		d.req.partitionPeriod = p
	}
	if s := d.opts.Partition; s != nil {
		p, err := temporal.Parse(*s)
		if err != nil {
			return err
		}
		d.req.partition = &p
	}
	return nil
}

func checkPartitionColumn(d *draft) error {
	col := d.opts.PartitionColumn
	if col == nil {
		return nil
	}
	if strings.TrimSpace(*col) == "" {
		return configErrorf(FieldPartitionColumn, "must not be empty")
	}
	if d.req.partition == nil {
		return configErrorf(FieldPartitionColumn, "partition must also be set to use a partition column")
	}
	c := *col
	d.req.partitionColumn = &c
	return nil
}

func checkSplit(d *draft) error {
	col, p := d.opts.SplitColumn, d.opts.QueryParallelism
	if (col == nil) != (p == nil) {
		field := FieldSplitColumn
		if col != nil {
			field = FieldQueryParallelism
		}
		return configErrorf(field, "either both queryParallelism and splitColumn must be set or neither")
	}
	if col == nil {
		return nil
	}
	if strings.TrimSpace(*col) == "" {
		return configErrorf(FieldSplitColumn, "must not be empty")
	}
	c := *col
	d.req.splitColumn = &c
	return nil
}

func checkPositive(d *draft) error {
	if p := d.opts.QueryParallelism; p != nil {
		if *p <= 0 {
			return configErrorf(FieldQueryParallelism, "must be a positive number, got %d", *p)
		}
		v := *p
		d.req.parallelism = &v
	}
	if l := d.opts.Limit; l != nil {
		if *l <= 0 {
			return configErrorf(FieldLimit, "must be a positive number, got %d", *l)
		}
		v := *l
		d.req.limit = &v
	}
	return nil
}

// checkFreshness rejects partitions older than the threshold. It is skipped
// entirely, minPartitionPeriod included, when explicitly disabled or when a
// partition column is set: the window is then applied as a WHERE clause, so
// old partitions are safe to select.
func checkFreshness(d *draft) error {
	if d.opts.SkipPartitionCheck || d.req.partitionColumn != nil {
		return nil
	}
	threshold := MinPartition(d.now, d.req.partitionPeriod)
	if s := d.opts.MinPartitionPeriod; s != nil {
		m, err := temporal.Parse(*s)
		if err != nil {
			return err
		}
		threshold = m
	}
	if d.req.partition == nil {
		return nil
	}
	if !d.req.partition.After(threshold) {
		return configErrorf(FieldPartition,
			"too old partition date %s: use a partition date after %s or set skipPartitionCheck",
			d.req.partition.Format(time.RFC3339), threshold.Format(time.RFC3339))
	}
	return nil
}

// MinPartition returns the default freshness threshold: now minus two
// partition periods, using calendar arithmetic in UTC.
func MinPartition(now time.Time, period temporal.Period) time.Time {
	return period.Multiply(2).Negate().AddTo(now.UTC())
}

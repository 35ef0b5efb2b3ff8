package request

import (
	"time"

	"github.com/roach88/dbexport/internal/temporal"
)

// Request is a fully validated export request.
//
// A Request is immutable: it is only built by FromOptions and exposes its
// fields through accessors. Optional values are returned with an ok flag.
type Request struct {
	source          Source
	limit           *int64
	partition       *time.Time
	partitionColumn *string
	partitionPeriod temporal.Period
	splitColumn     *string
	parallelism     *int
}

// Source returns the query source, either Table or RawSQL.
func (r *Request) Source() Source {
	return r.source
}

// TableName returns the table name when the source is a Table.
func (r *Request) TableName() (string, bool) {
	if t, ok := r.source.(Table); ok {
		return t.Name, true
	}
	return "", false
}

// Limit returns the per-statement row limit.
func (r *Request) Limit() (int64, bool) {
	if r.limit == nil {
		return 0, false
	}
	return *r.limit, true
}

// Partition returns the partition instant in UTC.
func (r *Request) Partition() (time.Time, bool) {
	if r.partition == nil {
		return time.Time{}, false
	}
	return *r.partition, true
}

// PartitionColumn returns the column the partition window filters on.
func (r *Request) PartitionColumn() (string, bool) {
	if r.partitionColumn == nil {
		return "", false
	}
	return *r.partitionColumn, true
}

// PartitionPeriod returns the width of the partition window. It defaults to
// one day.
func (r *Request) PartitionPeriod() temporal.Period {
	return r.partitionPeriod
}

// SplitColumn returns the numeric column used to split the export.
func (r *Request) SplitColumn() (string, bool) {
	if r.splitColumn == nil {
		return "", false
	}
	return *r.splitColumn, true
}

// Parallelism returns the requested number of parallel statements.
func (r *Request) Parallelism() (int, bool) {
	if r.parallelism == nil {
		return 0, false
	}
	return *r.parallelism, true
}

// Summary is a serializable view of a Request.
type Summary struct {
	Source          string `json:"source"`
	Table           string `json:"table,omitempty"`
	Limit           *int64 `json:"limit,omitempty"`
	Partition       string `json:"partition,omitempty"`
	PartitionColumn string `json:"partition_column,omitempty"`
	PartitionPeriod string `json:"partition_period"`
	SplitColumn     string `json:"split_column,omitempty"`
	Parallelism     *int   `json:"query_parallelism,omitempty"`
}

// Summary returns a copy of the request suitable for printing.
func (r *Request) Summary() Summary {
	s := Summary{
		Source:          r.source.String(),
		PartitionPeriod: r.partitionPeriod.String(),
	}
	s.Table, _ = r.TableName()
	if v, ok := r.Limit(); ok {
		s.Limit = &v
	}
	if p, ok := r.Partition(); ok {
		s.Partition = p.Format(time.RFC3339)
	}
	s.PartitionColumn, _ = r.PartitionColumn()
	s.SplitColumn, _ = r.SplitColumn()
	if v, ok := r.Parallelism(); ok {
		s.Parallelism = &v
	}
	return s
}

package request

// Options is the raw option set as collected from flags and config files.
//
// A nil pointer means the option was not given. Empty strings are not
// treated as "unset"; they are validated like any other value.
type Options struct {
	Table              *string
	SQL                *string // contents of --sql-file, already read and trimmed
	Limit              *int64
	Partition          *string
	PartitionColumn    *string
	PartitionPeriod    *string
	SplitColumn        *string
	QueryParallelism   *int
	SkipPartitionCheck bool
	MinPartitionPeriod *string
}

// Ptr returns a pointer to v. It keeps option literals in tests and flag
// plumbing short.
func Ptr[T any](v T) *T {
	return &v
}

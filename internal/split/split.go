// Package split divides a numeric key range into contiguous sub-ranges for
// parallel extraction.
package split

import "fmt"

// Range is a closed interval [Low, High] of split column values. Each Range
// becomes one independent extraction statement.
type Range struct {
	Low  int64 `json:"low"`
	High int64 `json:"high"`
}

// String renders the range as "[low, high]".
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Low, r.High)
}

// Split partitions [min, max] into at most parallelism ranges.
//
// The ranges are returned in ascending order, are pairwise disjoint, and their
// union is exactly [min, max]. The bucket width is ceil((max-min)/parallelism)
// (at least 1); every bucket but the last spans exactly that many values and
// the last one is closed at max. When the domain holds fewer distinct values
// than parallelism the result collapses to fewer, wider ranges, so
// Split(1, 2, 5) is the single range [1, 2].
//
// If min > max the domain is empty or inverted and [min, max] is returned
// unchanged as the only range. A parallelism below 1 is treated as 1.
func Split(min, max int64, parallelism int) []Range {
	if min > max {
		return []Range{{Low: min, High: max}}
	}
	if parallelism < 1 {
		parallelism = 1
	}

	// Offsets from min are computed in uint64 so that spans wider than
	// MaxInt64 (for example MinInt64..MaxInt64) do not overflow.
	span := uint64(max) - uint64(min)
	p := uint64(parallelism)
	bucket := span / p
	if span%p != 0 {
		bucket++
	}
	if bucket == 0 {
		bucket = 1
	}

	ranges := make([]Range, 0, Count(min, max, parallelism))
	var off uint64
	for span-off > bucket {
		low := int64(uint64(min) + off)
		ranges = append(ranges, Range{Low: low, High: low + int64(bucket-1)})
		off += bucket
	}
	ranges = append(ranges, Range{Low: int64(uint64(min) + off), High: max})
	return ranges
}

// Count returns the number of ranges Split would produce for the same
// arguments without allocating them.
func Count(min, max int64, parallelism int) int {
	if min > max {
		return 1
	}
	if parallelism < 1 {
		parallelism = 1
	}
	span := uint64(max) - uint64(min)
	p := uint64(parallelism)
	bucket := span / p
	if span%p != 0 {
		bucket++
	}
	if bucket == 0 {
		return 1
	}
	n := span / bucket
	if span%bucket != 0 {
		n++
	}
	return int(n)
}

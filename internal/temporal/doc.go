// Package temporal parses the date and time literals accepted on the command
// line.
//
// Two kinds of literal are understood:
//
//   - Instants of variable granularity, from a bare year ("2027") down to a
//     full timestamp with offset ("2027-07-31T13:37:59+02:00"). Missing
//     components default to the start of the enclosing period and the result
//     is always normalized to UTC.
//   - ISO-8601 date periods ("P1D", "P1M", "P1Y2M", "P2W") used as partition
//     widths. Periods are calendar based: adding "P1M" to July 31 lands on
//     August 31, and adding it to January 31 clamps to the end of February.
//
// Everything in this package is a pure function of its input. There is no
// shared parser state.
package temporal

package temporal

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// instantPattern matches yyyy[-MM[-dd[THH[:mm[:ss]]]]] followed by an
// optional offset. Groups: 1 year, 2 month, 3 day, 4 hour, 5 minute,
// 6 second, 7 offset.
var instantPattern = regexp.MustCompile(
	`(?i)^(\d{4})(?:-(\d{2})(?:-(\d{2})(?:T(\d{2})(?::(\d{2})(?::(\d{2}))?)?)?)?)?` +
		`(Z|[+-]\d{2}(?::?\d{2}(?::?\d{2})?)?)?$`)

// offsetPattern splits a numeric offset into sign, hours, minutes, seconds.
var offsetPattern = regexp.MustCompile(`^([+-])(\d{2})(?::?(\d{2}))?(?::?(\d{2}))?$`)

// maxOffset is the largest UTC offset accepted, matching ISO-8601 zone rules.
const maxOffset = 18 * time.Hour

// Parse converts a date/time literal of variable granularity into a UTC
// instant.
//
// Accepted forms, each optionally followed by "Z" or a numeric offset
// (+HH, +HH:mm, +HHmm, +HH:mm:ss):
//
//	2027
//	2027-05
//	2027-05-02
//	2027-05-02T23
//	2027-05-02T23:15
//	2027-05-02T23:15:59
//
// Missing components default to month 1, day 1 and midnight. A literal
// without an offset is taken to be UTC already. Matching is case-insensitive.
func Parse(s string) (time.Time, error) {
	m := instantPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, instantError(s, "expected yyyy[-MM[-dd[THH[:mm[:ss]]]]][offset]")
	}

	year := atoi(m[1], 0)
	month := atoi(m[2], 1)
	day := atoi(m[3], 1)
	hour := atoi(m[4], 0)
	minute := atoi(m[5], 0)
	second := atoi(m[6], 0)

	if month < 1 || month > 12 {
		return time.Time{}, instantError(s, "month out of range")
	}
	if day < 1 || day > daysIn(year, time.Month(month)) {
		return time.Time{}, instantError(s, "day out of range")
	}
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, instantError(s, "time of day out of range")
	}

	offset, err := parseOffset(m[7])
	if err != nil {
		return time.Time{}, instantError(s, err.Error())
	}

	local := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return local.Add(-offset).UTC(), nil
}

// parseOffset returns the signed distance from UTC encoded by an offset
// suffix. An empty suffix and "Z" are both zero.
func parseOffset(s string) (time.Duration, error) {
	if s == "" || s == "Z" || s == "z" {
		return 0, nil
	}
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errOffset
	}
	hours := atoi(m[2], 0)
	minutes := atoi(m[3], 0)
	seconds := atoi(m[4], 0)
	if minutes > 59 || seconds > 59 {
		return 0, errOffset
	}
	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if d > maxOffset {
		return 0, errOffset
	}
	if m[1] == "-" {
		d = -d
	}
	return d, nil
}

var errOffset = errors.New("offset out of range")

// atoi parses a regexp group of ASCII digits, returning def when the group
// did not participate in the match.
func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

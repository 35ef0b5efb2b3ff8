package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// periodPattern matches an ISO-8601 date period. Groups: 1 overall sign,
// 2 years, 3 months, 4 weeks, 5 days.
var periodPattern = regexp.MustCompile(
	`(?i)^([+-]?)P(?:([+-]?\d+)Y)?(?:([+-]?\d+)M)?(?:([+-]?\d+)W)?(?:([+-]?\d+)D)?$`)

// Period is a calendar amount of years, months and days.
//
// Unlike time.Duration a Period does not have a fixed length: one month is
// 28 to 31 days depending on where it is applied.
type Period struct {
	Years  int
	Months int
	Days   int
}

// Day is the default partition width.
var Day = Period{Days: 1}

// ParsePeriod parses an ISO-8601 date period such as "P1D", "P1M", "P2W" or
// "P1Y2M3D". Weeks are folded into days. Matching is case-insensitive.
func ParsePeriod(s string) (Period, error) {
	m := periodPattern.FindStringSubmatch(s)
	if m == nil {
		return Period{}, periodError(s, "expected P[nY][nM][nW][nD]")
	}
	if m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "" {
		return Period{}, periodError(s, "period has no components")
	}

	var p Period
	var err error
	if p.Years, err = component(m[2]); err != nil {
		return Period{}, periodError(s, err.Error())
	}
	if p.Months, err = component(m[3]); err != nil {
		return Period{}, periodError(s, err.Error())
	}
	weeks, err := component(m[4])
	if err != nil {
		return Period{}, periodError(s, err.Error())
	}
	days, err := component(m[5])
	if err != nil {
		return Period{}, periodError(s, err.Error())
	}
	p.Days = weeks*7 + days

	if m[1] == "-" {
		p = p.Negate()
	}
	return p, nil
}

func component(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("component %q out of range", s)
	}
	return n, nil
}

// IsZero reports whether the period has no length.
func (p Period) IsZero() bool {
	return p.Years == 0 && p.Months == 0 && p.Days == 0
}

// TotalMonths returns the years and months of p expressed in months.
func (p Period) TotalMonths() int {
	return p.Years*12 + p.Months
}

// Multiply scales every component of p by n.
func (p Period) Multiply(n int) Period {
	return Period{Years: p.Years * n, Months: p.Months * n, Days: p.Days * n}
}

// Negate flips the sign of every component of p.
func (p Period) Negate() Period {
	return p.Multiply(-1)
}

// AddTo returns t shifted by p.
//
// Years and months are applied first as a single month count; if the day of
// month does not exist in the target month it is clamped to the last valid
// day. Days are applied afterwards. The time of day and location of t are
// preserved.
func (p Period) AddTo(t time.Time) time.Time {
	if months := p.TotalMonths(); months != 0 {
		t = addMonths(t, months)
	}
	if p.Days != 0 {
		t = t.AddDate(0, 0, p.Days)
	}
	return t
}

// String renders p in ISO-8601 form. The zero period is "P0D".
func (p Period) String() string {
	if p.IsZero() {
		return "P0D"
	}
	var b strings.Builder
	b.WriteByte('P')
	if p.Years != 0 {
		fmt.Fprintf(&b, "%dY", p.Years)
	}
	if p.Months != 0 {
		fmt.Fprintf(&b, "%dM", p.Months)
	}
	if p.Days != 0 {
		fmt.Fprintf(&b, "%dD", p.Days)
	}
	return b.String()
}

func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	total := int(month) - 1 + months
	year += floorDiv(total, 12)
	month = time.Month(total-floorDiv(total, 12)*12) + 1
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

package models

import (
	"fmt"
	"strconv"
)

// Publication is the reconciled display shape for a single authored work.
// Every source strategy (activities JSON, public-record XML, page scraping)
// maps its own field names into this one struct before rendering.
type Publication struct {
	Title   string
	Authors []string
	Journal *string
	Date    PartialDate
	Link    *string
}

// PartialDate is a publication date where month and day may be absent.
// A zero field means the part is unknown.
type PartialDate struct {
	Year  int
	Month int
	Day   int
}

// IsZero reports whether no date part is known at all.
func (d PartialDate) IsZero() bool {
	return d.Year == 0
}

// String joins the known parts with dashes: "2021", "2021-03", "2021-03-09".
// Month and day are always zero-padded to two digits. A day without a month
// is ignored, since "2021--09" is not a date.
func (d PartialDate) String() string {
	if d.Year == 0 {
		return ""
	}
	s := strconv.Itoa(d.Year)
	if d.Month == 0 {
		return s
	}
	s += fmt.Sprintf("-%02d", d.Month)
	if d.Day == 0 {
		return s
	}
	return s + fmt.Sprintf("-%02d", d.Day)
}

package entities

import (
	"regexp"
	"time"
)

var periodPattern = regexp.MustCompile(`(?i)DEL\s+(\d{2})/(\d{2})/(\d{4})\s+AL\s+(\d{2})/(\d{2})/(\d{4})`)

// ParsePeriod parses a "DEL dd/mm/yyyy AL dd/mm/yyyy" statement period.
// Unrecognized input yields two zero times.
func ParsePeriod(period string) (time.Time, time.Time) {
	m := periodPattern.FindStringSubmatch(period)
	if m == nil {
		return time.Time{}, time.Time{}
	}
	start, err := time.Parse("02/01/2006", m[1]+"/"+m[2]+"/"+m[3])
	if err != nil {
		return time.Time{}, time.Time{}
	}
	end, err := time.Parse("02/01/2006", m[4]+"/"+m[5]+"/"+m[6])
	if err != nil {
		return time.Time{}, time.Time{}
	}
	return start, end
}

// SpanishMonthAbbrev maps month numbers to the three-letter Spanish
// abbreviations used in statement movement dates.
var SpanishMonthAbbrev = map[time.Month]string{
	time.January:   "ENE",
	time.February:  "FEB",
	time.March:     "MAR",
	time.April:     "ABR",
	time.May:       "MAY",
	time.June:      "JUN",
	time.July:      "JUL",
	time.August:    "AGO",
	time.September: "SEP",
	time.October:   "OCT",
	time.November:  "NOV",
	time.December:  "DIC",
}

// SpanishMonthNumber is the inverse of SpanishMonthAbbrev.
var SpanishMonthNumber = map[string]time.Month{
	"ENE": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"ABR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AGO": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DIC": time.December,
}

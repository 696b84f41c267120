package recon

import (
	"strings"
	"time"
)

// dayFirstLayouts are tried in order when parsing alarm timestamps and
// refuelling dates. Ambiguous numeric dates are day-first: "03/04/2024"
// is 3 April, matching the regional convention of the source exports.
var dayFirstLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseDayFirst coerces a free-text date or timestamp into UTC. The zero
// time is returned for empty or unparseable input; callers treat it as
// missing rather than failing the load.
func ParseDayFirst(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

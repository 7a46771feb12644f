package codec

import (
	"regexp"
	"strings"
	"time"
)

// dateRe is the accepted grammar: YYYY-MM-DD, optionally followed by
// THH:MM[:SS[.fraction]] and an optional Z or ±HH[:]MM offset.
var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([Tt]\d{2}:\d{2}(:\d{2}(\.\d+)?)?([Zz]|[+-]\d{2}:?\d{2})?)?$`)

// Layouts tried in order once the grammar matched. time.Parse accepts a
// fractional second after the seconds field even when the layout omits it.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
}

// ParseDate converts an ISO-8601 date or date-time to a UTC instant. Values
// without an offset are read as UTC. Calendar errors (month 13, Feb 30) are
// not dates.
func ParseDate(s string) (time.Time, bool) {
	if !dateRe.MatchString(s) {
		return time.Time{}, false
	}
	s = strings.ToUpper(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders t so that ParseDate reads it back unchanged.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

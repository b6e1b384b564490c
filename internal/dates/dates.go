package dates

import (
	"math"
	"strings"
	"time"

	"github.com/proposalarchitect/speakerscout/models"
)

// layouts is the ordered list of accepted date formats. The first layout that
// parses wins; anything else is reported as unparseable, never as an error.
var layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Parse parses a date string against the accepted layouts in order.
// The second return value is false when no layout matches.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsExpired reports whether an opportunity's application window is already
// closed relative to now. When a deadline exists it is authoritative; without
// one, a start date in the past counts as expired. With neither date the
// opportunity never expires by this rule.
func IsExpired(d models.DateInfo, now time.Time) bool {
	if d.ApplicationDeadline != "" {
		if deadline, ok := Parse(d.ApplicationDeadline); ok {
			return deadline.Before(now)
		}
		return false
	}
	if d.StartDate != "" {
		if start, ok := Parse(d.StartDate); ok {
			return start.Before(now)
		}
	}
	return false
}

// DaysUntilDeadline returns the signed whole-day distance from now to the
// application deadline, or nil when no parseable deadline exists. The value
// is negative once the deadline has passed; callers must not assume it is
// non-negative.
func DaysUntilDeadline(d models.DateInfo, now time.Time) *int {
	if d.ApplicationDeadline == "" {
		return nil
	}
	deadline, ok := Parse(d.ApplicationDeadline)
	if !ok {
		return nil
	}
	days := int(math.Floor(deadline.Sub(now).Hours() / 24))
	return &days
}

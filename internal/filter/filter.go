// Package filter derives the date-filtered view of the synced movements.
package filter

import (
	"fmt"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/models"
)

// DateLayout is the yyyy-MM-dd layout used for range bounds.
const DateLayout = "2006-01-02"

// Range is an inclusive day range. A nil bound disables that side of the filter.
type Range struct {
	Start *time.Time
	End   *time.Time
}

func (r Range) IsEmpty() bool {
	return r.Start == nil && r.End == nil
}

// StartOfDay returns 00:00:00.000 of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Apply keeps the movements dated within r, preserving their order.
func Apply(movements []models.Movement, r Range) []models.Movement {
	var start, end time.Time
	if r.Start != nil {
		start = StartOfDay(*r.Start)
	}
	if r.End != nil {
		end = EndOfDay(*r.End)
	}

	filtered := make([]models.Movement, 0, len(movements))
	for _, m := range movements {
		if r.Start != nil && m.Date.Before(start) {
			continue
		}
		if r.End != nil && m.Date.After(end) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// CurrentWeek returns Monday 00:00 to Sunday 23:59:59.999 of the week holding now,
// in now's location.
func CurrentWeek(now time.Time) Range {
	sinceMonday := (int(now.Weekday()) + 6) % 7
	monday := StartOfDay(now).AddDate(0, 0, -sinceMonday)
	sunday := EndOfDay(monday.AddDate(0, 0, 6))
	return Range{Start: &monday, End: &sunday}
}

// ParseRange reads yyyy-MM-dd bounds in loc. Empty strings leave a bound unset.
func ParseRange(startStr, endStr string, loc *time.Location) (Range, error) {
	var r Range
	if startStr != "" {
		t, err := time.ParseInLocation(DateLayout, startStr, loc)
		if err != nil {
			return Range{}, fmt.Errorf("invalid start date %q: %w", startStr, err)
		}
		r.Start = &t
	}
	if endStr != "" {
		t, err := time.ParseInLocation(DateLayout, endStr, loc)
		if err != nil {
			return Range{}, fmt.Errorf("invalid end date %q: %w", endStr, err)
		}
		r.End = &t
	}
	return r, nil
}

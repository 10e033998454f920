// pkg/utils/time_utils.go
package utils

import "time"

const DateLayout = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD string. Returns the zero time on failure
// so callers can decide how to default.
func ParseISODate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatISODate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInMonth returns the calendar length of the given month.
func DaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, 0).Add(-24 * time.Hour).Day()
}

// MonthsInRange lists the (year, month) pairs touched by [start, end],
// inclusive on both ends.
func MonthsInRange(start, end time.Time) [][2]int {
	var out [][2]int
	y, m := start.Year(), start.Month()
	for {
		out = append(out, [2]int{y, int(m)})
		if y == end.Year() && m == end.Month() {
			break
		}
		m++
		if m == 13 {
			m = time.January
			y++
		}
	}
	return out
}

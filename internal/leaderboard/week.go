package leaderboard

import (
	"fmt"
	"regexp"
	"time"
)

var weekIDPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// WeekID returns the leaderboard partition key for t, formatted YYYY-Www.
// Weeks are counted from January 1 in UTC, offset by the weekday that
// year started on, so week 1 may be shorter than seven days.
func WeekID(t time.Time) string {
	t = t.UTC()
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(t.Sub(start) / (24 * time.Hour))
	week := (days + int(start.Weekday()) + 1 + 6) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

// ValidWeekID reports whether s has the YYYY-Www shape.
func ValidWeekID(s string) bool {
	return weekIDPattern.MatchString(s)
}

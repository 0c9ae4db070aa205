package cli

import (
	"fmt"
	"time"

	"github.com/kdrews/cadence/internal/analytics"
	"github.com/kdrews/cadence/internal/storage"
)

const dateFormat = "2006-01-02"

type Context struct {
	Store storage.Provider
}

// parseDateArg interprets an optional --date value, defaulting to now.
// Dates are taken at noon local time so they land squarely inside the
// intended calendar day regardless of DST shifts.
func parseDateArg(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Now(), nil
	}
	d, err := time.ParseInLocation(dateFormat, dateStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateStr)
	}
	return d.Add(12 * time.Hour), nil
}

func formatStats(s analytics.HabitStats) string {
	status := "active"
	if s.Broken {
		status = "broken"
	}
	return fmt.Sprintf("current %d, longest %d %s(s), %s",
		s.Current, s.Longest, s.Habit.Periodicity.Unit(), status)
}

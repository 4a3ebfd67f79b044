package jobs

import (
	"fmt"
	"time"
)

// WeekLabel returns the ISO-week period label, e.g. "2026-W35".
func WeekLabel(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DayLabel returns the daily period label, e.g. "2026-08-27".
func DayLabel(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

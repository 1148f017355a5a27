package service

import "time"

// The two temporal queries use deliberately different comparison modes.
// Upcoming treats a due date as an instant and compares it against now;
// due-today treats it as a calendar-day label and matches it exactly.
// They must stay separate: unifying them changes results at day boundaries
// and across time zones.

// upcomingCutoff formats the current instant as a UTC ISO-8601 string for a
// lexicographic >= comparison against stored due dates.
func upcomingCutoff(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}

// todayLabel formats today's calendar date in the server's local time zone as
// a zero-padded YYYY-MM-DD label for an exact equality match.
func todayLabel(now time.Time) string {
	return now.Format("2006-01-02")
}

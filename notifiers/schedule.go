package notifiers

import "time"

// PublishAt returns tomorrow at hour:minute in loc, relative to now.
func PublishAt(now time.Time, loc *time.Location, hour, minute int) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
}

// ReportDate is the calendar day before now in loc, formatted YYYY-MM-DD.
func ReportDate(now time.Time, loc *time.Location) string {
	return now.In(loc).AddDate(0, 0, -1).Format(time.DateOnly)
}

package model

import "time"

// IsPayday reports whether salaries typically land on this date
// (month start 1st-5th and month end 30th-31st).
func IsPayday(date time.Time) bool {
	d := date.Day()
	return d <= 5 || d >= 30
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

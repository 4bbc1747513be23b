package services

import (
	"taskplanner/model"
)

// NextDueDate computes the next occurrence of a recurring task on or after
// fromDate. DAILY returns fromDate unchanged; the caller advances the
// anchor by one day first when it wants the occurrence after a completion.
// WEEKLY walks forward day by day (at most seven steps) until the weekday
// matches dayOfWeek.
func NextDueDate(fromDate model.Date, pattern model.RecurrencePattern, dayOfWeek *model.DayOfWeek) (model.Date, error) {
	switch pattern {
	case model.RecurrenceDaily:
		return fromDate, nil
	case model.RecurrenceWeekly:
		if dayOfWeek == nil {
			return model.Date{}, NewInvalidRecurrenceConfiguration("Day of week is required for weekly recurrence")
		}
		date := fromDate
		for date.Weekday() != dayOfWeek.Weekday() {
			date = date.AddDays(1)
		}
		return date, nil
	default:
		return model.Date{}, NewInvalidRecurrenceConfiguration("Unknown recurrence pattern: " + string(pattern))
	}
}

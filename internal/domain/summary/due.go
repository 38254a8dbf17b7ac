package summary

import (
	"time"

	"checklist-app-go/internal/domain/checklist"
)

// IsDue decides whether a task should be presented on the given day.
// Non-recurring tasks are always due. A recurring task with no completion
// history is due. Otherwise it is due once at least periodDays whole
// calendar days have passed since the last completion; the boundary day
// itself counts as due.
func IsDue(task checklist.Task, date time.Time, lastCompletion string) bool {
	period := task.Period()
	if period == 0 {
		return true
	}
	if lastCompletion == "" {
		return true
	}

	last, err := time.Parse(checklist.DateLayout, lastCompletion)
	if err != nil {
		// Unparseable history reads as no history.
		return true
	}
	return daysBetween(last, date) >= period
}

// daysBetween counts whole calendar days from one date to another,
// stripping time-of-day before subtracting.
func daysBetween(from, to time.Time) int {
	return int(midnightUTC(to).Sub(midnightUTC(from)).Hours() / 24)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package summary

import (
	"time"

	"checklist-app-go/internal/domain/checklist"
)

// SummarizeDay combines the master list, the completion history and the
// day's record (nil when none exists) into one day's statistics.
//
// The due buckets come from the record's persisted items snapshot when it
// is non-empty: that snapshot is what users actually saw, and it must not
// change retroactively as the master list or history evolve. Toggle-created
// records carry an empty snapshot, which falls back to recomputing against
// the master list.
func SummarizeDay(date time.Time, master []checklist.Task, idx CompletionIndex, rec *checklist.DailyRecord) DaySummary {
	sum := DaySummary{
		PeriodDueCounts: map[int]int{},
		PeriodChecks:    map[int]int{},
	}

	if rec != nil && len(rec.Items) > 0 {
		for _, task := range rec.Items {
			sum.PeriodDueCounts[task.Period()]++
		}
	} else {
		for _, task := range master {
			if IsDue(task, date, idx[task.ID]) {
				sum.PeriodDueCounts[task.Period()]++
			}
		}
	}

	if rec != nil && len(rec.Checked) > 0 {
		sum.Submitted = true

		periods := make(map[string]int, len(master))
		for _, task := range master {
			periods[task.ID] = task.Period()
		}

		for taskID := range rec.Checked {
			if !rec.Checked.Completed(taskID) {
				continue
			}
			// One count per task, no matter how many users checked it.
			// Unknown or retired ids land in bucket 0.
			sum.TotalChecked++
			sum.PeriodChecks[periods[taskID]]++
		}
	}

	// total_due is recomputed from the buckets so the two can never drift.
	for _, n := range sum.PeriodDueCounts {
		sum.TotalDue += n
	}
	return sum
}

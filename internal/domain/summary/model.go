package summary

// CompletionIndex maps task id to the most recent date ("YYYY-MM-DD") on
// which any user completed it. Tasks never completed are absent.
type CompletionIndex map[string]string

// DaySummary is one calendar day's statistics. The period maps bucket by
// the tasks' normalized recurrence period, so distinct tasks sharing a
// period merge into one bucket.
type DaySummary struct {
	Submitted       bool        `json:"submitted"`
	TotalChecked    int         `json:"total_checked"`
	TotalDue        int         `json:"total_due"`
	PeriodDueCounts map[int]int `json:"period_due_counts"`
	PeriodChecks    map[int]int `json:"period_checks"`
}

// RangeSummary is the calendar-shaped result for an inclusive date span.
type RangeSummary struct {
	PerDate          map[string]DaySummary `json:"summaryData"`
	TotalMasterItems int                   `json:"totalMasterItems"`
}

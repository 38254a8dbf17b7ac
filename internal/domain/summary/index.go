package summary

import "checklist-app-go/internal/domain/checklist"

// Add folds one daily record into the index: every task with at least one
// user entry marked checked is a completion candidate for the record's
// date, and the lexically greatest date wins (YYYY-MM-DD sorts
// chronologically).
func (idx CompletionIndex) Add(rec checklist.DailyRecord) {
	for taskID := range rec.Checked {
		if !rec.Checked.Completed(taskID) {
			continue
		}
		if prev, ok := idx[taskID]; !ok || rec.Date > prev {
			idx[taskID] = rec.Date
		}
	}
}

// BuildIndex derives the completion index from a full history scan.
func BuildIndex(records []checklist.DailyRecord) CompletionIndex {
	idx := CompletionIndex{}
	for _, rec := range records {
		idx.Add(rec)
	}
	return idx
}

package checklist

import "time"

const DateLayout = "2006-01-02"

// Task is one entry of the master checklist. PeriodDays is the recurrence
// interval in whole days; nil or non-positive means the task is due every
// day.
type Task struct {
	ID         string `json:"id" firestore:"id"`
	Label      string `json:"label" firestore:"label"`
	PeriodDays *int   `json:"periodDays,omitempty" firestore:"periodDays"`
}

// Period normalizes the recurrence interval: 0 means non-recurring.
func (t Task) Period() int {
	if t.PeriodDays == nil || *t.PeriodDays <= 0 {
		return 0
	}
	return *t.PeriodDays
}

// CheckEntry records one user's check of one task on one day. Timestamp is
// store-assigned when written as the zero value.
type CheckEntry struct {
	Checked   bool      `json:"checked" firestore:"checked"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	Note      string    `json:"note,omitempty" firestore:"note,omitempty"`
	PhotoURL  string    `json:"photoUrl,omitempty" firestore:"photoUrl,omitempty"`
}

// CheckedMap maps task id to per-user check entries. A task key must not
// outlive its last user entry.
type CheckedMap map[string]map[string]CheckEntry

// Completed reports whether any user entry marks the task checked.
func (m CheckedMap) Completed(taskID string) bool {
	for _, entry := range m[taskID] {
		if entry.Checked {
			return true
		}
	}
	return false
}

// DailyRecord is the persisted state of one calendar date. The document id
// is the date string; Items is the task snapshot shown to users that day,
// which may differ from the live master list.
type DailyRecord struct {
	Date        string     `json:"date" firestore:"date"`
	Items       []Task     `json:"items" firestore:"items"`
	Checked     CheckedMap `json:"checked" firestore:"checked"`
	LastUpdated time.Time  `json:"lastUpdated,omitempty" firestore:"lastUpdated,serverTimestamp"`
}

// MasterList is the live task registry document.
type MasterList struct {
	Items       []Task    `json:"items" firestore:"items"`
	LastUpdated time.Time `json:"lastUpdated,omitempty" firestore:"lastUpdated,serverTimestamp"`
}

package summary

import (
	"testing"

	"checklist-app-go/internal/domain/checklist"
)

func masterFixture() []checklist.Task {
	return []checklist.Task{
		{ID: "dishes", Label: "Do the dishes"},                          // always due
		{ID: "plants", Label: "Water plants", PeriodDays: intPtr(3)},    // every 3 days
		{ID: "filters", Label: "Swap filters", PeriodDays: intPtr(30)},  // every 30 days
		{ID: "bins", Label: "Take out the bins", PeriodDays: intPtr(3)}, // shares the 3-day bucket
	}
}

func TestSummarizeDayNoRecordNoHistory(t *testing.T) {
	master := []checklist.Task{
		{ID: "A"},
		{ID: "B", PeriodDays: intPtr(3)},
	}

	sum := SummarizeDay(date("2024-02-01"), master, CompletionIndex{}, nil)

	if sum.Submitted {
		t.Fatal("expected submitted=false without a record")
	}
	if sum.TotalChecked != 0 {
		t.Fatalf("expected 0 checked, got %d", sum.TotalChecked)
	}
	if sum.TotalDue != 2 {
		t.Fatalf("expected 2 due, got %d", sum.TotalDue)
	}
	if sum.PeriodDueCounts[0] != 1 || sum.PeriodDueCounts[3] != 1 {
		t.Fatalf("unexpected due buckets: %v", sum.PeriodDueCounts)
	}
}

func TestSummarizeDayHistorySuppressesRecurring(t *testing.T) {
	idx := CompletionIndex{
		"plants":  "2024-01-31", // 1 day before: not due
		"filters": "2024-01-01", // 31 days before: due
		"bins":    "2024-01-29", // exactly 3 days before: due
	}

	sum := SummarizeDay(date("2024-02-01"), masterFixture(), idx, nil)

	// dishes (always), filters, bins.
	if sum.TotalDue != 3 {
		t.Fatalf("expected 3 due, got %d (buckets %v)", sum.TotalDue, sum.PeriodDueCounts)
	}
	if sum.PeriodDueCounts[3] != 1 {
		t.Fatalf("expected one 3-day task due, got %v", sum.PeriodDueCounts)
	}
}

func TestSummarizeDayChecksCountOncePerTask(t *testing.T) {
	rec := &checklist.DailyRecord{
		Date: "2024-02-01",
		Checked: checklist.CheckedMap{
			"dishes": checkedBy("ana", "ben", "cleo"),
			"plants": checkedBy("ana"),
		},
	}

	sum := SummarizeDay(date("2024-02-01"), masterFixture(), CompletionIndex{}, rec)

	if !sum.Submitted {
		t.Fatal("expected submitted=true")
	}
	if sum.TotalChecked != 2 {
		t.Fatalf("expected 2 checked tasks, got %d", sum.TotalChecked)
	}
	if sum.PeriodChecks[0] != 1 || sum.PeriodChecks[3] != 1 {
		t.Fatalf("unexpected check buckets: %v", sum.PeriodChecks)
	}
}

func TestSummarizeDayRetiredTaskBucketsUnderZero(t *testing.T) {
	rec := &checklist.DailyRecord{
		Date: "2024-02-01",
		Checked: checklist.CheckedMap{
			"long-gone": checkedBy("ana"),
		},
	}

	sum := SummarizeDay(date("2024-02-01"), masterFixture(), CompletionIndex{}, rec)

	if sum.PeriodChecks[0] != 1 {
		t.Fatalf("retired task should bucket under 0, got %v", sum.PeriodChecks)
	}
}

func TestSummarizeDayPrefersPersistedSnapshot(t *testing.T) {
	rec := &checklist.DailyRecord{
		Date: "2024-02-01",
		// Snapshot from the day the record was written: two tasks only.
		Items: []checklist.Task{
			{ID: "dishes"},
			{ID: "plants", PeriodDays: intPtr(3)},
		},
	}
	// History that would suppress everything if recomputed.
	idx := CompletionIndex{
		"dishes":  "2024-02-01",
		"plants":  "2024-02-01",
		"filters": "2024-02-01",
		"bins":    "2024-02-01",
	}

	sum := SummarizeDay(date("2024-02-01"), masterFixture(), idx, rec)

	if sum.TotalDue != 2 {
		t.Fatalf("expected persisted snapshot count 2, got %d", sum.TotalDue)
	}
	if sum.PeriodDueCounts[0] != 1 || sum.PeriodDueCounts[3] != 1 {
		t.Fatalf("unexpected due buckets: %v", sum.PeriodDueCounts)
	}
}

func TestSummarizeDayEmptySnapshotRecomputes(t *testing.T) {
	// Toggle-created records persist items: [] — that is not a snapshot.
	rec := &checklist.DailyRecord{
		Date:    "2024-02-01",
		Items:   []checklist.Task{},
		Checked: checklist.CheckedMap{"dishes": checkedBy("ana")},
	}

	sum := SummarizeDay(date("2024-02-01"), masterFixture(), CompletionIndex{}, rec)

	if sum.TotalDue != 4 {
		t.Fatalf("expected recomputed due count 4, got %d", sum.TotalDue)
	}
}

func TestSummarizeDayTotalDueMatchesBuckets(t *testing.T) {
	indexes := []CompletionIndex{
		{},
		{"plants": "2024-01-31"},
		{"plants": "2024-01-20", "filters": "2024-01-31", "bins": "2024-01-31"},
	}
	records := []*checklist.DailyRecord{
		nil,
		{Date: "2024-02-01", Checked: checklist.CheckedMap{"dishes": checkedBy("ana")}},
		{Date: "2024-02-01", Items: []checklist.Task{{ID: "dishes"}}, Checked: checklist.CheckedMap{"ghost": checkedBy("ben")}},
	}

	for i, idx := range indexes {
		for j, rec := range records {
			sum := SummarizeDay(date("2024-02-01"), masterFixture(), idx, rec)
			total := 0
			for _, n := range sum.PeriodDueCounts {
				total += n
			}
			if sum.TotalDue != total {
				t.Fatalf("case %d/%d: total_due %d != bucket sum %d", i, j, sum.TotalDue, total)
			}
		}
	}
}

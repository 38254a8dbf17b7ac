package summary

import (
	"context"
	"time"

	"checklist-app-go/internal/domain/checklist"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// LastCompletions rebuilds the completion index from the entire history.
// The scan is O(all dates); callers reuse one index per request.
func (s *Service) LastCompletions(ctx context.Context) (CompletionIndex, error) {
	idx := CompletionIndex{}
	err := s.repo.StreamRecords(ctx, func(rec checklist.DailyRecord) error {
		idx.Add(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// DueItems filters the master list down to the tasks due on the given day.
func (s *Service) DueItems(ctx context.Context, date time.Time) ([]checklist.Task, error) {
	master, err := s.repo.MasterItems(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := s.LastCompletions(ctx)
	if err != nil {
		return nil, err
	}

	due := make([]checklist.Task, 0, len(master.Items))
	for _, task := range master.Items {
		if IsDue(task, date, idx[task.ID]) {
			due = append(due, task)
		}
	}
	return due, nil
}

// Calendar walks the inclusive date span one calendar day at a time,
// summarizing each day against a single precomputed completion index. The
// index deliberately covers the whole history, including records written
// after a candidate date; a task completed "in the future" reads as not due
// on earlier days, matching how the stored data was produced.
func (s *Service) Calendar(ctx context.Context, start, end time.Time) (RangeSummary, error) {
	master, err := s.repo.MasterItems(ctx)
	if err != nil {
		return RangeSummary{}, err
	}
	idx, err := s.LastCompletions(ctx)
	if err != nil {
		return RangeSummary{}, err
	}

	out := RangeSummary{
		PerDate:          map[string]DaySummary{},
		TotalMasterItems: len(master.Items),
	}

	end = midnightUTC(end)
	for day := midnightUTC(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(checklist.DateLayout)
		rec, err := s.repo.Record(ctx, date)
		if err != nil {
			return RangeSummary{}, err
		}
		out.PerDate[date] = SummarizeDay(day, master.Items, idx, rec)
	}
	return out, nil
}

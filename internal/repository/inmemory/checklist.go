package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	checklistdomain "checklist-app-go/internal/domain/checklist"
)

// Checklist is a mutex-guarded in-memory stand-in for the document store.
// It mirrors the store's merge semantics: array fields replace, nested
// check maps merge per user entry, timestamps are assigned on write. It
// backs the "memory" store driver and the e2e suite.
type Checklist struct {
	mu      sync.RWMutex
	master  checklistdomain.MasterList
	records map[string]checklistdomain.DailyRecord
	now     func() time.Time
}

func NewChecklist() *Checklist {
	return &Checklist{
		records: make(map[string]checklistdomain.DailyRecord),
		now:     time.Now,
	}
}

func (s *Checklist) MasterItems(_ context.Context) (checklistdomain.MasterList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := checklistdomain.MasterList{
		Items:       append([]checklistdomain.Task{}, s.master.Items...),
		LastUpdated: s.master.LastUpdated,
	}
	return list, nil
}

func (s *Checklist) ReplaceMasterItems(_ context.Context, items []checklistdomain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.master = checklistdomain.MasterList{
		Items:       append([]checklistdomain.Task{}, items...),
		LastUpdated: s.now(),
	}
	return nil
}

func (s *Checklist) Record(_ context.Context, date string) (*checklistdomain.DailyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[date]
	if !ok {
		return nil, nil
	}
	out := copyRecord(rec)
	return &out, nil
}

func (s *Checklist) MergeRecord(_ context.Context, rec checklistdomain.DailyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[rec.Date]
	if !ok {
		current = checklistdomain.DailyRecord{
			Date:    rec.Date,
			Items:   []checklistdomain.Task{},
			Checked: checklistdomain.CheckedMap{},
		}
	}

	if rec.Items != nil {
		current.Items = append([]checklistdomain.Task{}, rec.Items...)
	}
	for taskID, users := range rec.Checked {
		if current.Checked[taskID] == nil {
			current.Checked[taskID] = map[string]checklistdomain.CheckEntry{}
		}
		for user, entry := range users {
			if entry.Timestamp.IsZero() {
				entry.Timestamp = s.now()
			}
			current.Checked[taskID][user] = entry
		}
	}
	current.LastUpdated = s.now()

	s.records[rec.Date] = current
	return nil
}

func (s *Checklist) SetCheck(_ context.Context, date, taskID, user string, entry checklistdomain.CheckEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[date]
	if !ok {
		current = checklistdomain.DailyRecord{
			Date:    date,
			Items:   []checklistdomain.Task{},
			Checked: checklistdomain.CheckedMap{},
		}
	}
	if current.Checked == nil {
		current.Checked = checklistdomain.CheckedMap{}
	}
	if current.Checked[taskID] == nil {
		current.Checked[taskID] = map[string]checklistdomain.CheckEntry{}
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	current.Checked[taskID][user] = entry
	current.LastUpdated = s.now()

	s.records[date] = current
	return nil
}

func (s *Checklist) ClearCheck(_ context.Context, date, taskID, user string, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[date]
	if !ok {
		return nil
	}

	users, ok := current.Checked[taskID]
	if !ok {
		return nil
	}
	delete(users, user)
	if len(users) == 0 {
		delete(current.Checked, taskID)
	}
	current.LastUpdated = s.now()

	s.records[date] = current
	return nil
}

func (s *Checklist) AttachPhotoURL(_ context.Context, date, taskID, user, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[date]
	if !ok {
		current = checklistdomain.DailyRecord{
			Date:    date,
			Items:   []checklistdomain.Task{},
			Checked: checklistdomain.CheckedMap{},
		}
	}
	if current.Checked == nil {
		current.Checked = checklistdomain.CheckedMap{}
	}
	if current.Checked[taskID] == nil {
		current.Checked[taskID] = map[string]checklistdomain.CheckEntry{}
	}
	entry := current.Checked[taskID][user]
	entry.PhotoURL = url
	current.Checked[taskID][user] = entry
	current.LastUpdated = s.now()

	s.records[date] = current
	return nil
}

func (s *Checklist) StreamRecords(_ context.Context, fn func(checklistdomain.DailyRecord) error) error {
	s.mu.RLock()
	dates := make([]string, 0, len(s.records))
	for date := range s.records {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	records := make([]checklistdomain.DailyRecord, 0, len(dates))
	for _, date := range dates {
		records = append(records, copyRecord(s.records[date]))
	}
	s.mu.RUnlock()

	for _, rec := range records {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func copyRecord(rec checklistdomain.DailyRecord) checklistdomain.DailyRecord {
	out := checklistdomain.DailyRecord{
		Date:        rec.Date,
		Items:       append([]checklistdomain.Task{}, rec.Items...),
		Checked:     make(checklistdomain.CheckedMap, len(rec.Checked)),
		LastUpdated: rec.LastUpdated,
	}
	for taskID, users := range rec.Checked {
		copied := make(map[string]checklistdomain.CheckEntry, len(users))
		for user, entry := range users {
			copied[user] = entry
		}
		out.Checked[taskID] = copied
	}
	return out
}

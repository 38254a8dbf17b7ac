package summary

import (
	"context"

	"checklist-app-go/internal/domain/checklist"
)

// Repository is the read-only slice of the document store the summary
// service needs. StreamRecords visits every daily record; malformed
// documents are skipped by the implementation, not surfaced here.
type Repository interface {
	MasterItems(ctx context.Context) (checklist.MasterList, error)
	Record(ctx context.Context, date string) (*checklist.DailyRecord, error)
	StreamRecords(ctx context.Context, fn func(checklist.DailyRecord) error) error
}

package checklist

import "context"

// Repository is the document-store contract the checklist service consumes.
// Writes are merges: SetCheck and AttachPhotoURL touch only the targeted
// nested fields, ClearCheck deletes the user entry (or the whole task key
// when it would be left empty). Record returns nil, nil for unwritten dates.
type Repository interface {
	MasterItems(ctx context.Context) (MasterList, error)
	ReplaceMasterItems(ctx context.Context, items []Task) error
	Record(ctx context.Context, date string) (*DailyRecord, error)
	MergeRecord(ctx context.Context, rec DailyRecord) error
	SetCheck(ctx context.Context, date, taskID, user string, entry CheckEntry) error
	ClearCheck(ctx context.Context, date, taskID, user string, removeTask bool) error
	AttachPhotoURL(ctx context.Context, date, taskID, user, url string) error
}

// BlobStore stores opaque bytes and returns a public URL.
type BlobStore interface {
	Put(ctx context.Context, path, contentType string, data []byte) (string, error)
}

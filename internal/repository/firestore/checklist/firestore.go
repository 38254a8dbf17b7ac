package checklist

import (
	"context"
	"errors"
	"fmt"

	"checklist-app-go/internal/db"
	checklistdomain "checklist-app-go/internal/domain/checklist"
	"checklist-app-go/pkg/logger"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	checklistsCollection = "checklists"
	configCollection     = "config"
	masterItemsDoc       = "checklist_items"
)

type Firestore struct {
	fb  *db.Firebase
	log logger.Logger
}

func NewFirestore(fb *db.Firebase, log logger.Logger) *Firestore {
	return &Firestore{fb: fb, log: log}
}

func (r *Firestore) client(ctx context.Context) (*firestore.Client, error) {
	client, err := r.fb.Firestore(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: %v", checklistdomain.ErrNotConfigured, err)
		}
		return nil, err
	}
	return client, nil
}

func (r *Firestore) MasterItems(ctx context.Context) (checklistdomain.MasterList, error) {
	client, err := r.client(ctx)
	if err != nil {
		return checklistdomain.MasterList{}, err
	}

	ctx, cancel := r.fb.OpContext(ctx)
	defer cancel()

	snap, err := client.Collection(configCollection).Doc(masterItemsDoc).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return checklistdomain.MasterList{Items: []checklistdomain.Task{}}, nil
	}
	if err != nil {
		return checklistdomain.MasterList{}, fmt.Errorf("get master items: %w", err)
	}

	var list checklistdomain.MasterList
	if err := snap.DataTo(&list); err != nil {
		// Degraded read: a malformed registry document reads as empty.
		r.log.Warn("firestore: malformed master items document", "err", err)
		return checklistdomain.MasterList{Items: []checklistdomain.Task{}}, nil
	}
	if list.Items == nil {
		list.Items = []checklistdomain.Task{}
	}
	return list, nil
}

func (r *Firestore) ReplaceMasterItems(ctx context.Context, items []checklistdomain.Task) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := r.fb.OpContext(ctx)
	defer cancel()

	_, err = client.Collection(configCollection).Doc(masterItemsDoc).Set(ctx, map[string]any{
		"items":       items,
		"lastUpdated": firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("replace master items: %w", err)
	}
	return nil
}

func (r *Firestore) Record(ctx context.Context, date string) (*checklistdomain.DailyRecord, error) {
	client, err := r.client(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.fb.OpContext(ctx)
	defer cancel()

	snap, err := client.Collection(checklistsCollection).Doc(date).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", date, err)
	}

	rec := decodeRecord(snap, r.log)
	return &rec, nil
}

func (r *Firestore) MergeRecord(ctx context.Context, rec checklistdomain.DailyRecord) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := r.fb.OpContext(ctx)
	defer cancel()

	_, err = client.Collection(checklistsCollection).Doc(rec.Date).Set(ctx, map[string]any{
		"date":        rec.Date,
		"items":       rec.Items,
		"checked":     rec.Checked,
		"lastUpdated": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("merge record %s: %w", rec.Date, err)
	}
	return nil
}

func (r *Firestore) SetCheck(ctx context.Context, date, taskID, user string, entry checklistdomain.CheckEntry) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := r.fb.OpContext(ctx)
	defer cancel()

	// Merge-set creates the record lazily and only touches the one nested
	// user entry plus lastUpdated.
	_, err = client.Collection(checklistsCollection).Doc(date).Set(ctx, map[string]any{
		"date": date,
		"checked": map[string]any{
			taskID: map[string]any{user: encodeEntry(entry)},
		},
		"lastUpdated": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("set check %s/%s/%s: %w", date, taskID, user, err)
	}
	return nil
}

func (r *Firestore) ClearCheck(ctx context.Context, date, taskID, user string, removeTask bool) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := r.fb.OpContext(ctx)
	defer cancel()

	// Deleting the whole task key when its last user entry goes keeps the
	// no-empty-user-maps invariant inside the stored document.
	path := firestore.FieldPath{"checked", taskID}
	if !removeTask {
		path = append(path, user)
	}

	_, err = client.Collection(checklistsCollection).Doc(date).Update(ctx, []firestore.Update{
		{FieldPath: path, Value: firestore.Delete},
		{FieldPath: firestore.FieldPath{"lastUpdated"}, Value: firestore.ServerTimestamp},
	})
	if status.Code(err) == codes.NotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("clear check %s/%s/%s: %w", date, taskID, user, err)
	}
	return nil
}

func (r *Firestore) AttachPhotoURL(ctx context.Context, date, taskID, user, url string) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := r.fb.OpContext(ctx)
	defer cancel()

	_, err = client.Collection(checklistsCollection).Doc(date).Set(ctx, map[string]any{
		"date": date,
		"checked": map[string]any{
			taskID: map[string]any{user: map[string]any{"photoUrl": url}},
		},
		"lastUpdated": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("attach photo url %s/%s/%s: %w", date, taskID, user, err)
	}
	return nil
}

func encodeEntry(entry checklistdomain.CheckEntry) map[string]any {
	fields := map[string]any{"checked": entry.Checked}
	if entry.Timestamp.IsZero() {
		fields["timestamp"] = firestore.ServerTimestamp
	} else {
		fields["timestamp"] = entry.Timestamp
	}
	if entry.Note != "" {
		fields["note"] = entry.Note
	}
	if entry.PhotoURL != "" {
		fields["photoUrl"] = entry.PhotoURL
	}
	return fields
}

// decodeRecord tolerates malformed documents: anything that fails to map
// onto the record shape degrades to an empty record for that date instead
// of failing the request.
func decodeRecord(snap *firestore.DocumentSnapshot, log logger.Logger) checklistdomain.DailyRecord {
	var rec checklistdomain.DailyRecord
	if err := snap.DataTo(&rec); err != nil {
		log.Warn("firestore: malformed checklist record", "date", snap.Ref.ID, "err", err)
		rec = checklistdomain.DailyRecord{}
	}
	rec.Date = snap.Ref.ID
	if rec.Items == nil {
		rec.Items = []checklistdomain.Task{}
	}
	if rec.Checked == nil {
		rec.Checked = checklistdomain.CheckedMap{}
	}
	return rec
}

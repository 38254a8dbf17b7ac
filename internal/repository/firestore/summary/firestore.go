package summary

import (
	"context"
	"errors"
	"fmt"

	"checklist-app-go/internal/db"
	checklistdomain "checklist-app-go/internal/domain/checklist"
	checklistrepo "checklist-app-go/internal/repository/firestore/checklist"
	"checklist-app-go/pkg/logger"

	"google.golang.org/api/iterator"
)

const checklistsCollection = "checklists"

// Firestore serves the summary domain's read-only view of the store. Point
// reads are shared with the checklist repository; streaming the whole
// history is specific to summaries.
type Firestore struct {
	*checklistrepo.Firestore
	fb  *db.Firebase
	log logger.Logger
}

func NewFirestore(fb *db.Firebase, log logger.Logger) *Firestore {
	return &Firestore{
		Firestore: checklistrepo.NewFirestore(fb, log),
		fb:        fb,
		log:       log,
	}
}

// StreamRecords visits every daily record in the store. Documents that do
// not decode are skipped with a warning; the scan itself is bounded by the
// request context.
func (r *Firestore) StreamRecords(ctx context.Context, fn func(checklistdomain.DailyRecord) error) error {
	client, err := r.fb.Firestore(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			return fmt.Errorf("%w: %v", checklistdomain.ErrNotConfigured, err)
		}
		return err
	}

	iter := client.Collection(checklistsCollection).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stream checklists: %w", err)
		}

		var rec checklistdomain.DailyRecord
		if err := snap.DataTo(&rec); err != nil {
			r.log.Warn("firestore: skipping malformed checklist record", "date", snap.Ref.ID, "err", err)
			continue
		}
		rec.Date = snap.Ref.ID

		if err := fn(rec); err != nil {
			return err
		}
	}
}
